package monitoring

import (
	"testing"

	coremon "github.com/kilianp07/transport/core/monitoring"
)

func TestNewSentryMonitor_EmptyDSN(t *testing.T) {
	m, err := NewSentryMonitor(SentryConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(coremon.NopMonitor); !ok {
		t.Fatalf("expected NopMonitor, got %T", m)
	}
}

func TestNewSentryMonitor_InvalidDSN(t *testing.T) {
	if _, err := NewSentryMonitor(SentryConfig{DSN: "not a dsn"}); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}
