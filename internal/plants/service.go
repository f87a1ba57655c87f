// Package plants coordinates report generation: cache lookups, LLM calls
// with retry, and name normalization.
package plants

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maniwar/plantfacts/internal/llm"
)

// Generator produces report text from chat messages. *llm.Client satisfies it.
type Generator interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
	Stream(ctx context.Context, messages []llm.Message, fn func(delta string) error) (string, error)
}

// Store caches raw report text per plant name. *cache.Cache satisfies it.
type Store interface {
	Get(ctx context.Context, subject string) (string, bool)
	Set(ctx context.Context, subject, text string) error
	Delete(ctx context.Context, subject string) error
}

// Service answers plant report requests.
type Service struct {
	gen   Generator
	store Store
	log   *slog.Logger
}

func NewService(gen Generator, store Store, log *slog.Logger) *Service {
	return &Service{gen: gen, store: store, log: log}
}

// NormalizeName title-cases a plant name so cache keys are stable across
// request casing ("snake plant" and "Snake Plant" share an entry).
func NormalizeName(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	for i, f := range fields {
		r := []rune(strings.ToLower(f))
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}

// Report returns the raw report text for a plant, serving from cache when
// possible. The second return reports whether the text came from cache.
func (s *Service) Report(ctx context.Context, name string) (string, bool, error) {
	name = NormalizeName(name)
	if name == "" {
		return "", false, fmt.Errorf("empty plant name")
	}

	if text, ok := s.store.Get(ctx, name); ok {
		return text, true, nil
	}

	text, err := s.generate(ctx, llm.AnalysisMessages(name))
	if err != nil {
		return "", false, fmt.Errorf("generate report for %q: %w", name, err)
	}
	if err := s.store.Set(ctx, name, text); err != nil {
		s.log.Warn("cache write failed", "plant", name, "error", err)
	}
	return text, false, nil
}

// StreamReport streams report text through fn as it arrives. Cache hits are
// replayed as a single delta. The full text is cached once streaming ends.
func (s *Service) StreamReport(ctx context.Context, name string, fn func(delta string) error) (string, bool, error) {
	name = NormalizeName(name)
	if name == "" {
		return "", false, fmt.Errorf("empty plant name")
	}

	if text, ok := s.store.Get(ctx, name); ok {
		if err := fn(text); err != nil {
			return "", true, err
		}
		return text, true, nil
	}

	text, err := s.gen.Stream(ctx, llm.AnalysisMessages(name), fn)
	if err != nil {
		return "", false, fmt.Errorf("stream report for %q: %w", name, err)
	}
	if err := s.store.Set(ctx, name, text); err != nil {
		s.log.Warn("cache write failed", "plant", name, "error", err)
	}
	return text, false, nil
}

// Identify names the plant in a base64-encoded JPEG.
func (s *Service) Identify(ctx context.Context, imageB64 string) (string, error) {
	name, err := s.generate(ctx, llm.IdentifyMessages(imageB64))
	if err != nil {
		return "", fmt.Errorf("identify plant: %w", err)
	}
	return strings.TrimSpace(name), nil
}

// Invalidate drops the cached report for a plant.
func (s *Service) Invalidate(ctx context.Context, name string) error {
	return s.store.Delete(ctx, NormalizeName(name))
}

func (s *Service) generate(ctx context.Context, messages []llm.Message) (string, error) {
	var lastErr error
	for attempt := 0; attempt < llm.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := llm.Backoff(attempt)
			s.log.Info("retrying generation", "attempt", attempt+1, "wait", wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		text, err := s.gen.Complete(ctx, messages)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !llm.IsRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("giving up after %d attempts: %w", llm.MaxRetries, lastErr)
}
