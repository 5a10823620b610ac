package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/handle"
)

func versionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/appVersion" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"reported version", http.StatusOK, `{"Version":"1.2.3"}`, "1.2.3"},
		{"server error", http.StatusInternalServerError, `{"Version":"1.2.3"}`, handle.UnknownVersion},
		{"not found", http.StatusNotFound, ``, handle.UnknownVersion},
		{"malformed body", http.StatusOK, `<html>`, handle.UnknownVersion},
		{"missing field", http.StatusOK, `{"Name":"radish"}`, handle.UnknownVersion},
		{"empty version", http.StatusOK, `{"Version":""}`, handle.UnknownVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := versionServer(t, tt.status, tt.body)
			prober := NewVersionProber(time.Second, zap.NewNop())

			got := prober.Probe(context.Background(), srv.URL+"/api/v1/")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	prober := NewVersionProber(time.Second, zap.NewNop())
	assert.Equal(t, handle.UnknownVersion, prober.Probe(context.Background(), url+"/api/v1/"))
}

func TestProbeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	prober := NewVersionProber(50*time.Millisecond, zap.NewNop())
	assert.Equal(t, handle.UnknownVersion, prober.Probe(context.Background(), srv.URL+"/api/v1/"))
}
