package control

import (
	"context"
	"testing"
	"time"

	"github.com/vietddude/sniffer/internal/core/config"
)

func TestApp_Lifecycle(t *testing.T) {
	cfg := ConfigFrom(&config.AppConfig{
		Server:   config.ServerConfig{Port: 0},
		Analysis: config.Default().Analysis,
	})
	cfg.WorkerEnabled = true // no Redis configured: worker stays off

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.worker != nil {
		t.Error("expected no worker without Redis")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := app.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestNewEmitters_LogOnly(t *testing.T) {
	sinks := NewEmitters(Config{})
	if sinks.Len() != 1 {
		t.Errorf("expected only the log sink, got %d", sinks.Len())
	}
}
