package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client reverse-geocodes coordinates to a display string. It never fails:
// any error degrades to a formatted coordinate string so the attendance
// commit is unaffected.
type Client interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) string
}

type nominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewNominatimClient(baseURL, userAgent string) Client {
	return &nominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func (c *nominatimClient) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	fallback := fmt.Sprintf("Location: %.6f, %.6f", lat, lon)

	endpoint := fmt.Sprintf("%s/reverse?%s", c.baseURL, url.Values{
		"lat":    {fmt.Sprintf("%f", lat)},
		"lon":    {fmt.Sprintf("%f", lon)},
		"format": {"json"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("reverse geocode request failed", "error", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("reverse geocode non-200 response", "status", resp.StatusCode)
		return fallback
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Warn("reverse geocode decode failed", "error", err)
		return fallback
	}

	if body.DisplayName == "" {
		return fallback
	}
	return body.DisplayName
}
