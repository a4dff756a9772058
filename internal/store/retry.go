package store

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"
)

// RetryPolicy relance les opérations de store en échec transitoire :
// nombre de tentatives fixe, délai fixe, pas de backoff. Les erreurs
// non transitoires (violation de contrainte, requête invalide) remontent
// immédiatement sans nouvelle tentative.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

// DefaultRetryPolicy : 3 tentatives espacées de 2 secondes.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Retryable:   IsTransient,
	}
}

// Do exécute fn en relançant uniquement les erreurs jugées transitoires.
func (p RetryPolicy) Do(fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt < p.MaxAttempts-1 {
			time.Sleep(p.Delay)
		}
	}
	return lastErr
}

// IsTransient reconnaît les échecs ScyllaDB qui valent la peine d'être
// retentés : timeouts, indisponibilité de réplicas, perte de connexion.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gocql.ErrTimeoutNoResponse) ||
		errors.Is(err, gocql.ErrNoConnections) ||
		errors.Is(err, gocql.ErrConnectionClosed) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var unavailable *gocql.RequestErrUnavailable
	var readTimeout *gocql.RequestErrReadTimeout
	var writeTimeout *gocql.RequestErrWriteTimeout
	return errors.As(err, &unavailable) ||
		errors.As(err, &readTimeout) ||
		errors.As(err, &writeTimeout)
}
