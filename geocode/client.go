// Package geocode queries a Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org/"

type Place struct {
	Lat         *string  `json:"lat"`
	Lon         *string  `json:"lon"`
	DisplayName *string  `json:"display_name"`
	Address     *Address `json:"address"`
}

type Address struct {
	City    *string `json:"city"`
	Town    *string `json:"town"`
	State   *string `json:"state"`
	Country *string `json:"country"`
}

// Coordinates parses lat/lon. ok is false unless both parse.
func (p Place) Coordinates() (lat, lon float64, ok bool) {
	if p.Lat == nil || p.Lon == nil {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(*p.Lat), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(*p.Lon), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search returns at most one match, in provider order.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build geocoding request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.Errorf("geocoding responded %d", resp.StatusCode)
	}

	var places []Place
	if err = json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, errors.Wrap(err, "decode geocoding response")
	}
	return places, nil
}
