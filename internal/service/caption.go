package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/capgen/backend/internal/metrics"
	"github.com/capgen/backend/internal/models"
	"github.com/capgen/backend/internal/provider"
	"github.com/capgen/backend/internal/validator"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type ProviderRegistry interface {
	Resolve(selector string) (provider.Provider, error)
	List() []models.ProviderInfo
}

// CaptionService orchestrates one caption generation: validate the upload,
// resolve a provider, call it, hand back the result. Each step is a hard
// gate; a failed provider call is surfaced, never retried elsewhere.
type CaptionService struct {
	logger          *log.Logger
	validator       *validator.Validator
	registry        ProviderRegistry
	providerTimeout time.Duration
	cache           Cache
}

func NewCaptionService(
	logger *log.Logger,
	v *validator.Validator,
	registry ProviderRegistry,
	providerTimeout time.Duration,
) *CaptionService {
	return &CaptionService{
		logger:          logger,
		validator:       v,
		registry:        registry,
		providerTimeout: providerTimeout,
	}
}

func (s *CaptionService) SetCacheClient(cache Cache) {
	s.cache = cache
}

func (s *CaptionService) Providers() []models.ProviderInfo {
	return s.registry.List()
}

func (s *CaptionService) Generate(ctx context.Context, req *models.CaptionRequest) (*models.CaptionResult, error) {
	mime, err := s.validator.Validate(req.Image, req.MimeType)
	if err != nil {
		return nil, err
	}
	req.MimeType = mime

	p, err := s.registry.Resolve(req.Provider)
	if err != nil {
		return nil, err
	}

	key := cacheKey(req, p.ID())
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Printf("cache get error: %v", err)
		}
		if found {
			var result models.CaptionResult
			if err := sonic.UnmarshalString(cached, &result); err == nil {
				s.logger.Printf("caption served from cache, provider=%s", p.ID())
				return &result, nil
			}
			s.logger.Printf("discarding undecodable cache entry %s", key)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	start := time.Now()
	result, err := p.Generate(callCtx, req.Image, req.MimeType, req.Context)
	metrics.ProviderCallDuration(p.ID(), time.Since(start))
	if err != nil {
		metrics.CaptionRequest(p.ID(), "error")
		return nil, err
	}
	metrics.CaptionRequest(p.ID(), "ok")

	if s.cache != nil {
		if data, err := sonic.MarshalString(result); err == nil {
			if err := s.cache.Set(ctx, key, data); err != nil {
				s.logger.Printf("failed to set cache: %v", err)
			}
		}
	}
	return result, nil
}

// cacheKey digests everything that influences the provider output: the image
// bytes, the sniffed type, the tone text and the provider itself.
func cacheKey(req *models.CaptionRequest, providerID string) string {
	h := sha256.New()
	h.Write(req.Image)
	h.Write([]byte(req.MimeType))
	h.Write([]byte(req.Context))
	h.Write([]byte(providerID))
	return hex.EncodeToString(h.Sum(nil))
}
