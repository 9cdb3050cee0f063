// Package resolve turns raw utterances into structured commands. Resolution
// tries the persistent cache first, then the remote classifier, and always
// lands on the offline rule set when both are unavailable. Resolve never
// fails outward.
package resolve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync/atomic"
	"time"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// Service implements the ports.Resolver port.
type Service struct {
	Client ports.CompletionClient
	Cache  ports.CacheRepository
	Config domain.Config
	Logger ports.Logger

	// Sensitive overrides the built-in lexical denylist used by the
	// offline fallback. Nil means the built-in rules apply.
	Sensitive func(string) bool

	remoteCount   atomic.Uint64
	cacheCount    atomic.Uint64
	fallbackCount atomic.Uint64
}

// Resolve implements ports.Resolver. The returned command carries the
// capture source and the path that produced it.
func (s *Service) Resolve(ctx context.Context, utterance string, source domain.Source) (domain.Command, error) {
	now := time.Now()
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return domain.Command{
			Intent:           domain.IntentUnknown,
			Entities:         map[string]any{},
			Confidence:       0,
			RawText:          utterance,
			Source:           source,
			ProcessingMethod: domain.MethodFallback,
			Timestamp:        now,
		}, nil
	}

	key := CacheKey(trimmed)

	if s.Config.IsCacheEnabled() && s.Cache != nil {
		if entry, ok := s.Cache.Get(key, now); ok {
			s.cacheCount.Add(1)
			s.Logger.Debug("resolved from cache", map[string]interface{}{"key": key})
			return s.toCommand(entry.Classification, trimmed, source, domain.MethodCache, now), nil
		}
	}

	if s.Client != nil {
		reqCtx, cancel := context.WithTimeout(ctx, s.Config.GetRequestTimeout())
		classification, err := s.Client.Classify(reqCtx, trimmed)
		cancel()
		if err == nil && classification.Intent != "" {
			classification = clamp(classification)
			s.remoteCount.Add(1)
			s.store(key, trimmed, classification, now)
			return s.toCommand(classification, trimmed, source, domain.MethodRemote, now), nil
		}
		if err != nil {
			s.Logger.Warn("remote classification failed, using fallback", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	s.fallbackCount.Add(1)
	return s.toCommand(classifyFallback(trimmed, s.Sensitive), trimmed, source, domain.MethodFallback, now), nil
}

// Stats implements ports.Resolver.
func (s *Service) Stats() ports.ResolverStats {
	return ports.ResolverStats{
		Remote:   s.remoteCount.Load(),
		Cache:    s.cacheCount.Load(),
		Fallback: s.fallbackCount.Load(),
	}
}

func (s *Service) store(key, utterance string, c domain.Classification, now time.Time) {
	if !s.Config.IsCacheEnabled() || s.Cache == nil {
		return
	}
	// privacy mode keeps sensitive classifications out of the persistent store
	if s.Config.IsPrivacyEnabled() && c.RequiresConfirmation {
		return
	}
	entry := domain.CacheEntry{
		Key:            key,
		Utterance:      utterance,
		Classification: c,
		CreatedAt:      now,
		TTL:            s.Config.GetCacheTTL(c.Intent),
	}
	if err := s.Cache.Set(entry); err != nil {
		s.Logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) toCommand(c domain.Classification, raw string, source domain.Source, method domain.ProcessingMethod, now time.Time) domain.Command {
	if c.Entities == nil {
		c.Entities = map[string]any{}
	}
	return domain.Command{
		Intent:               c.Intent,
		Entities:             c.Entities,
		Confidence:           c.Confidence,
		RequiresConfirmation: c.RequiresConfirmation,
		RawText:              raw,
		Source:               source,
		ProcessingMethod:     method,
		Timestamp:            now,
	}
}

func clamp(c domain.Classification) domain.Classification {
	if c.Confidence < 0 {
		c.Confidence = 0
	}
	if c.Confidence > 1 {
		c.Confidence = 1
	}
	return c
}

// CacheKey normalizes an utterance into a stable cache key.
func CacheKey(utterance string) string {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

var _ ports.Resolver = (*Service)(nil)
