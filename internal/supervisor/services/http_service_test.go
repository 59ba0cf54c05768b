// Watchlens - Watch History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/watchlens

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// fakeServer records lifecycle calls in order. ListenAndServe either fails
// with startErr or blocks until Shutdown.
type fakeServer struct {
	startErr    error
	shutdownErr error

	started  chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	calls []string
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		started: make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
}

func (f *fakeServer) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeServer) log() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeServer) ListenAndServe() error {
	f.record("listen")
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.record("shutdown")
	f.stopOnce.Do(func() { close(f.stopped) })
	return f.shutdownErr
}

func waitStarted(t *testing.T, f *fakeServer) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe was not called")
	}
}

func serveAsync(ctx context.Context, svc *HTTPServerService) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	return errCh
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestNewHTTPServerService(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"explicit", 30 * time.Second, 30 * time.Second},
		{"zero", 0, defaultShutdownTimeout},
		{"negative", -time.Second, defaultShutdownTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHTTPServerService(newFakeServer(), tt.timeout)
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != "http-server" {
				t.Errorf("String() = %q, want http-server", svc.String())
			}
		})
	}
}

func TestHTTPServerServiceStartFailure(t *testing.T) {
	bindErr := errors.New("listen tcp :8080: bind: address already in use")
	server := newFakeServer()
	server.startErr = bindErr

	err := NewHTTPServerService(server, time.Second).Serve(context.Background())
	if !errors.Is(err, bindErr) {
		t.Fatalf("Serve() = %v, want wrapped bind error", err)
	}
	if got := server.log(); len(got) != 1 || got[0] != "listen" {
		t.Errorf("calls = %v, want [listen]", got)
	}
}

func TestHTTPServerServiceCancellation(t *testing.T) {
	shutdownErr := errors.New("context deadline exceeded while draining")

	tests := []struct {
		name        string
		shutdownErr error
		want        error
	}{
		{"clean shutdown", nil, context.Canceled},
		{"shutdown error", shutdownErr, shutdownErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newFakeServer()
			server.shutdownErr = tt.shutdownErr
			svc := NewHTTPServerService(server, time.Second)

			var drainCalls []string
			svc.OnDrain(func() { drainCalls = server.log() })

			ctx, cancel := context.WithCancel(context.Background())
			errCh := serveAsync(ctx, svc)
			waitStarted(t, server)
			cancel()

			select {
			case err := <-errCh:
				if !errors.Is(err, tt.want) {
					t.Errorf("Serve() = %v, want %v", err, tt.want)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Serve did not return after cancellation")
			}

			if len(drainCalls) != 1 || drainCalls[0] != "listen" {
				t.Errorf("calls seen by drain hook = %v, want [listen]", drainCalls)
			}
			if got := server.log(); len(got) != 2 || got[1] != "shutdown" {
				t.Errorf("calls = %v, want [listen shutdown]", got)
			}
		})
	}
}

func TestHTTPServerServiceUnderSupervisor(t *testing.T) {
	server := newFakeServer()
	svc := NewHTTPServerService(server, time.Second)

	sup := suture.New("test", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)
	waitStarted(t, server)
	cancel()

	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("supervisor did not stop")
	}

	got := server.log()
	if len(got) != 2 || got[0] != "listen" || got[1] != "shutdown" {
		t.Errorf("calls = %v, want one listen then one shutdown", got)
	}
}
