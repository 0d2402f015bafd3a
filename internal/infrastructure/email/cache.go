package email

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/workforce/identity-service/internal/core/domain"
	"github.com/workforce/identity-service/internal/core/ports"
)

// ReportCache abstracts the verdict store (Redis).
type ReportCache interface {
	Get(ctx context.Context, email string) ([]byte, error)
	Set(ctx context.Context, email string, payload []byte) error
}

// CachedVerifier decorates an EmailVerifier with a report cache. Cache
// failures are never fatal; the wrapped verifier is consulted instead.
type CachedVerifier struct {
	next  ports.EmailVerifier
	cache ReportCache
	log   zerolog.Logger
}

func NewCachedVerifier(next ports.EmailVerifier, cache ReportCache, log zerolog.Logger) *CachedVerifier {
	return &CachedVerifier{next: next, cache: cache, log: log}
}

func (v *CachedVerifier) Verify(ctx context.Context, address string) (*domain.EmailVerification, error) {
	payload, err := v.cache.Get(ctx, address)
	if err != nil {
		v.log.Warn().Err(err).Msg("verification cache read failed, querying service")
	} else if payload != nil {
		var report domain.EmailVerification
		if err := json.Unmarshal(payload, &report); err == nil {
			return &report, nil
		}
		v.log.Warn().Str("email", address).Msg("discarding corrupt cached verification report")
	}

	report, err := v.next.Verify(ctx, address)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(report); err == nil {
		if err := v.cache.Set(ctx, address, payload); err != nil {
			v.log.Warn().Err(err).Msg("failed to cache verification report")
		}
	}
	return report, nil
}
