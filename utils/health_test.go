package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHealthMonitorCheck(t *testing.T) {
	m := NewHealthMonitor(time.Minute, map[string]HealthCheck{
		"database": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	})

	if !m.Status().CheckedAt.IsZero() {
		t.Fatal("expected empty snapshot before first check")
	}

	status := m.Check(context.Background())
	if !status.Services["database"] {
		t.Error("database should be healthy")
	}
	if status.Services["redis"] {
		t.Error("redis should be unhealthy")
	}
	if status.Healthy() {
		t.Error("overall status should be unhealthy")
	}
	if m.Status().CheckedAt != status.CheckedAt {
		t.Error("snapshot was not stored")
	}
}

func TestHealthStatusHealthyWhenAllUp(t *testing.T) {
	s := HealthStatus{Services: map[string]bool{"database": true, "redis": true}}
	if !s.Healthy() {
		t.Fatal("expected healthy")
	}
}
