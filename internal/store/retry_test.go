package store

import (
	"errors"
	"testing"
)

var errTransient = errors.New("réplica indisponible")
var errTerminal = errors.New("requête invalide")

func testPolicy(attempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: attempts,
		Delay:       0,
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
	}
}

func TestRetryPolicySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := testPolicy(3).Do(func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	if err != nil {
		t.Fatalf("erreur inattendue: %v", err)
	}
	if calls != 3 {
		t.Fatalf("%d appels, attendu 3", calls)
	}
}

func TestRetryPolicyExhaustsAttempts(t *testing.T) {
	calls := 0
	err := testPolicy(3).Do(func() error {
		calls++
		return errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("erreur = %v, attendu l'échec transitoire", err)
	}
	if calls != 3 {
		t.Fatalf("%d appels, attendu 3", calls)
	}
}

func TestRetryPolicyDoesNotRetryTerminalErrors(t *testing.T) {
	calls := 0
	err := testPolicy(3).Do(func() error {
		calls++
		return errTerminal
	})
	if !errors.Is(err, errTerminal) {
		t.Fatalf("erreur = %v, attendu l'échec terminal", err)
	}
	if calls != 1 {
		t.Fatalf("%d appels, attendu 1 (pas de retry sur erreur terminale)", calls)
	}
}

func TestRetryPolicyFirstTrySuccess(t *testing.T) {
	calls := 0
	if err := testPolicy(3).Do(func() error { calls++; return nil }); err != nil {
		t.Fatalf("erreur inattendue: %v", err)
	}
	if calls != 1 {
		t.Fatalf("%d appels, attendu 1", calls)
	}
}
