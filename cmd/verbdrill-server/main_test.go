package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/bootstrap"
	"github.com/at-ishikawa/verbdrill/internal/config"
)

func TestCorsMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := corsMiddleware(next, []string{"http://localhost:3000"})

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "allowed origin", method: http.MethodPost, origin: "http://localhost:3000", wantStatus: http.StatusTeapot, wantOrigin: "http://localhost:3000"},
		{name: "other origin", method: http.MethodPost, origin: "https://example.com", wantStatus: http.StatusTeapot},
		{name: "preflight", method: http.MethodOptions, origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantOrigin: "http://localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/verbdrill.v1.DrillService/StartRound", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 9090\n"), 0644))

	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestNewDrillHandler(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr bool
	}{
		{
			name: "yaml history",
			cfg: &config.Config{
				Practice: config.PracticeConfig{VerbCount: 3},
				History:  config.HistoryConfig{Backend: config.HistoryBackendYAML, Directory: t.TempDir()},
			},
		},
		{
			name: "unknown tense",
			cfg: &config.Config{
				Practice: config.PracticeConfig{VerbCount: 3, Tenses: []string{"Present Perfect"}},
				History:  config.HistoryConfig{Backend: config.HistoryBackendYAML, Directory: t.TempDir()},
			},
			wantErr: true,
		},
		{
			name: "missing catalog file",
			cfg: &config.Config{
				Practice: config.PracticeConfig{VerbCount: 3},
				Catalog:  config.CatalogConfig{File: filepath.Join(t.TempDir(), "missing.yml")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := newDrillHandler(tt.cfg, bootstrap.New())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, handler)
		})
	}
}
