// Package monitor reports unexpected server errors to a Discord webhook.
// Reporting is best-effort: a broken webhook must never take a request
// down with it, so failures are logged and swallowed.
package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type Monitor struct {
	webhookURL string
	client     *http.Client
}

func New(webhookURL string) *Monitor {
	return &Monitor{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Error posts the error to the configured webhook. Returns false when the
// webhook is unset or the delivery failed.
func (m *Monitor) Error(ctx context.Context, reported error) bool {
	if reported == nil {
		return false
	}
	if m.webhookURL == "" {
		log.Error().Err(reported).Msg("error webhook not configured, dropping report")
		return false
	}

	payload := map[string]string{
		"content": fmt.Sprintf("Data: %s\n```\n%s\n```", time.Now().Format(time.RFC1123), reported.Error()),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("could not marshal webhook payload")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.webhookURL, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("could not build webhook request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("could not deliver error webhook")
		return false
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", res.StatusCode).Msg("error webhook rejected")
		return false
	}
	return true
}
