// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"testing"
	"time"

	"github.com/carterperez-dev/surveys/internal/config"
)

type drainRecorder struct {
	shutdown bool
}

func (d *drainRecorder) SetShutdown(shutdown bool) { d.shutdown = shutdown }

func TestStartAndShutdown(t *testing.T) {
	drain := &drainRecorder{}
	srv := New(Config{
		ServerConfig: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		HealthHandler: drain,
	})

	if srv.Router() == nil {
		t.Fatalf("expected router")
	}

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// Give ListenAndServe a moment to bind before shutting down.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx, 10*time.Millisecond); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !drain.shutdown {
		t.Fatalf("expected readiness to be flipped before shutdown")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
