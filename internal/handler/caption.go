package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/capgen/backend/internal/models"
)

const Version = "1.0.0"

// Slack on top of the configured image limit so a request carrying a
// max-size file plus multipart framing still reaches the validator, which
// reports the precise size violation.
const multipartOverhead = 1 << 20

type captionService interface {
	Generate(ctx context.Context, req *models.CaptionRequest) (*models.CaptionResult, error)
	Providers() []models.ProviderInfo
}

type CaptionHandler struct {
	logger    *log.Logger
	service   captionService
	maxUpload int64
}

func NewCaptionHandler(logger *log.Logger, service captionService, maxUpload int64) *CaptionHandler {
	return &CaptionHandler{
		logger:    logger,
		service:   service,
		maxUpload: maxUpload,
	}
}

// GenerateCaption godoc
// @Summary Generate caption for an image
// @Description Uploads an image and returns a short caption, long description, hashtags and a CTA produced by the selected AI provider.
// @Tags captions
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file (jpeg, png, webp or gif)"
// @Param context formData string false "Optional tone or context for the caption"
// @Param provider formData string false "Provider id (gemini or openai); defaults to the configured provider"
// @Success 200 {object} models.CaptionResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /generate-caption [post]
func (h *CaptionHandler) GenerateCaption(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxUpload + multipartOverhead); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart request: %s", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read file: %s", err))
		return
	}

	userContext := strings.TrimSpace(r.FormValue("context"))
	if len(userContext) > models.MaxContextLen {
		h.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("context too long: maximum %d characters", models.MaxContextLen))
		return
	}

	req := &models.CaptionRequest{
		Image:    image,
		MimeType: r.MultipartForm.File["file"][0].Header.Get("Content-Type"),
		Context:  userContext,
		Provider: strings.TrimSpace(r.FormValue("provider")),
	}

	result, err := h.service.Generate(r.Context(), req)
	if err != nil {
		status, detail := h.mapError(err)
		h.writeError(w, status, detail)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// ListProviders godoc
// @Summary List configured providers
// @Produce json
// @Success 200 {array} models.ProviderInfo
// @Router /providers [get]
func (h *CaptionHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Providers())
}

// Health godoc
// @Summary Liveness check
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router / [get]
func (h *CaptionHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// mapError converts domain failures to a status code plus a client-safe
// detail string. Anything unclassified becomes a 500 with a generic body;
// the full error only goes to the server log.
func (h *CaptionHandler) mapError(err error) (int, string) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, vErr.Detail
	}
	if errors.Is(err, models.ErrUnknownProvider) || errors.Is(err, models.ErrNoProvider) {
		return http.StatusBadRequest, err.Error()
	}
	var pErr *models.ProviderError
	if errors.As(err, &pErr) {
		h.logger.Printf("provider failure: %v", err)
		detail := fmt.Sprintf("provider %s failed (%s)", pErr.Provider, pErr.Kind)
		if pErr.Kind == models.KindRateLimited {
			return http.StatusTooManyRequests, detail
		}
		return http.StatusBadGateway, detail
	}
	h.logger.Printf("unexpected error: %v", err)
	return http.StatusInternalServerError, "internal server error"
}

func (h *CaptionHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(body); err != nil {
		h.logger.Printf("failed to encode response: %v", err)
	}
}

func (h *CaptionHandler) writeError(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, models.ErrorResponse{Detail: detail})
}
