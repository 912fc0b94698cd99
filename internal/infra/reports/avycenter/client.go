package avycenter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mtnwx/avalanche-briefing/internal/domain/report"
)

const defaultBaseURL = "https://avalanche.state.co.us/api-proxy/avid"

// Client fetches daily field reports from the public avalanche center API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves all field reports observed on a given calendar date.
func (c *Client) Fetch(ctx context.Context, date string) ([]report.FieldReport, error) {
	endpoint := fmt.Sprintf("%s/observations?date=%s", c.baseURL, url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("report request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("report request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read report response: %w", err)
	}

	reports, err := decodeReports(body)
	if err != nil {
		return nil, fmt.Errorf("decode report response: %w", err)
	}
	return reports, nil
}

// decodeReports accepts either a bare JSON array or the enveloped form the
// API switched to in a later revision. Unknown fields are ignored.
func decodeReports(body []byte) ([]report.FieldReport, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var reports []report.FieldReport
		if err := json.Unmarshal(body, &reports); err != nil {
			return nil, err
		}
		return reports, nil
	}

	var envelope struct {
		Observations []report.FieldReport `json:"observations"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Observations, nil
}
