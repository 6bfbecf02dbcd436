package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Geocoder turns coordinates into a display address.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) string
}

// NominatimGeocoder looks addresses up on an OpenStreetMap Nominatim endpoint.
type NominatimGeocoder struct {
	client   *http.Client
	endpoint string
}

func NewNominatimGeocoder(endpoint string) *NominatimGeocoder {
	return &NominatimGeocoder{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		endpoint: endpoint,
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road     string `json:"road"`
		Suburb   string `json:"suburb"`
		City     string `json:"city"`
		Town     string `json:"town"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// Reverse never fails: any lookup error falls back to the rounded coordinates.
func (g *NominatimGeocoder) Reverse(ctx context.Context, lat, lng float64) string {
	addr, err := g.lookup(ctx, lat, lng)
	if err != nil {
		log.Printf("Reverse geocoding error: %v", err)
		return CoordinateAddress(lat, lng)
	}
	return addr
}

func (g *NominatimGeocoder) lookup(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	// Nominatim rejects requests without an identifying agent
	req.Header.Set("User-Agent", "smart-rubbish/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	var data nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	var parts []string
	a := data.Address
	for _, p := range []string{a.Road, a.Suburb, firstNonEmpty(a.City, a.Town), a.State, a.Postcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", "), nil
	}
	if data.DisplayName == "" {
		return "", fmt.Errorf("empty address")
	}
	return data.DisplayName, nil
}

// CoordinateAddress formats coordinates the way they are shown when no address is known.
func CoordinateAddress(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
