package store

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCredentialRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetCredential("tok-123"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}

	got, err := s.Credential()
	if err != nil {
		t.Fatalf("Credential: %v", err)
	}
	if got != "tok-123" {
		t.Errorf("Credential = %q, want %q", got, "tok-123")
	}
}

func TestCredentialMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Credential()
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("Credential on empty store = %v, want ErrNoCredential", err)
	}
}

func TestSetCredentialOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetCredential("old"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	if err := s.SetCredential("new"); err != nil {
		t.Fatalf("SetCredential overwrite: %v", err)
	}

	got, err := s.Credential()
	if err != nil {
		t.Fatalf("Credential: %v", err)
	}
	if got != "new" {
		t.Errorf("Credential = %q, want %q", got, "new")
	}
}

func TestClearCredential(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetCredential("tok"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	if err := s.ClearCredential(); err != nil {
		t.Fatalf("ClearCredential: %v", err)
	}

	if _, err := s.Credential(); !errors.Is(err, ErrNoCredential) {
		t.Errorf("Credential after clear = %v, want ErrNoCredential", err)
	}

	// Clearing an empty store is not an error.
	if err := s.ClearCredential(); err != nil {
		t.Errorf("ClearCredential on empty store: %v", err)
	}
}
