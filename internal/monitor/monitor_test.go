package monitor_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdcommunity/mdbots-api/internal/monitor"
	"github.com/stretchr/testify/require"
)

func TestMonitorError(t *testing.T) {
	t.Run("delivers the error as a content block", func(t *testing.T) {
		var received map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		ok := monitor.New(srv.URL).Error(context.Background(), errors.New("boom"))
		require.True(t, ok)
		require.Contains(t, received["content"], "boom")
	})

	t.Run("webhook rejection is reported as failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		require.False(t, monitor.New(srv.URL).Error(context.Background(), errors.New("boom")))
	})

	t.Run("unset webhook", func(t *testing.T) {
		require.False(t, monitor.New("").Error(context.Background(), errors.New("boom")))
	})

	t.Run("nil error", func(t *testing.T) {
		require.False(t, monitor.New("http://example.invalid").Error(context.Background(), nil))
	})
}
