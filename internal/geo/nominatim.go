package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"food-delivery/internal/domain"
)

// NominatimClient resolves addresses via a Nominatim-compatible HTTP API.
type NominatimClient struct {
	baseURL string
	httpc   *http.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *NominatimClient) Resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: unexpected status %d", address, resp.StatusCode)
	}

	// Nominatim returns lat/lon as strings.
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinate{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", address, domain.ErrAddressNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}
	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}
