/*
Package binlist is the client for the binlist.net lookup service.

A single GET per BIN. The protocol version header is always sent; an
Authorization header only when the caller passes one. Every response field is
optional, upstream omits whatever it does not know.
*/
package binlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"git.thinkinpower.net/bincheck/data"
	"git.thinkinpower.net/bincheck/mod"
	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://lookup.binlist.net/"

type Response struct {
	Number  *mod.CardNumber `json:"number"`
	Scheme  *string         `json:"scheme"`
	Type    *string         `json:"type"`
	Brand   *string         `json:"brand"`
	Prepaid *bool           `json:"prepaid"`
	Country *mod.Country    `json:"country"`
	Bank    *BankInfo       `json:"bank"`
}

// BankInfo is the bank object as binlist sends it, without coordinates.
type BankInfo struct {
	Name  *string `json:"name"`
	Url   *string `json:"url"`
	Phone *string `json:"phone"`
	City  *string `json:"city"`
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("binlist responded %d %s", e.Code, http.StatusText(e.Code))
}

// TransportError is returned when the request never produced a response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "binlist unreachable: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

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

// Lookup fetches the record for bin. authorization is sent verbatim as the
// Authorization header when non-empty.
func (c *Client) Lookup(ctx context.Context, bin, authorization string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(bin), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build binlist request")
	}
	req.Header.Set(data.HeaderAcceptVersion, data.AcceptVersion)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "binlist request aborted")
		}
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var out Response
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode binlist response")
	}
	return &out, nil
}
