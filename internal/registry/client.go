// Package registry talks to the DOI registration infrastructure: the
// agency endpoint that says which registrar issued an identifier, the
// CrossRef works and journals APIs, and the DataCite REST API.
//
// Every lookup makes exactly one external call (plus the documented
// nested journal call) with no retries. Failures come back as *Error
// values carrying a Kind; callers are expected to map every kind to an
// empty result rather than propagate it.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Default public endpoints.
const (
	DefaultAPIBase      = "https://api.crossref.org"
	DefaultDataCiteBase = "https://api.datacite.org"
)

const defaultTimeout = 15 * time.Second

// Agency identifies the registrar family that issued a DOI.
type Agency string

const (
	AgencyCrossref Agency = "crossref"
	AgencyDataCite Agency = "datacite"
	AgencyUnknown  Agency = "unknown"
)

// Options configures a Client.
type Options struct {
	// APIBase is the CrossRef API root (works, journals, agency).
	APIBase string
	// DataCiteBase is the DataCite REST API root.
	DataCiteBase string
	// MailTo, when set, is advertised in the User-Agent for access to
	// the polite pool.
	MailTo string
	// Timeout bounds each individual call. A timed-out call is a
	// transport failure; it is not retried.
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls. Zero means the
	// default of 5.
	RequestsPerSecond float64
}

// Client is a shared, rate-limited HTTP client for all registry lookups.
type Client struct {
	http         *http.Client
	limiter      *rate.Limiter
	apiBase      string
	dataciteBase string
	userAgent    string
}

// New creates a registry client.
func New(opts Options) *Client {
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}

	if opts.DataCiteBase == "" {
		opts.DataCiteBase = DefaultDataCiteBase
	}

	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}

	userAgent := "docmeta/1.0"
	if opts.MailTo != "" {
		userAgent = fmt.Sprintf("docmeta/1.0 (mailto:%s)", opts.MailTo)
	}

	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		},
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		apiBase:      strings.TrimSuffix(opts.APIBase, "/"),
		dataciteBase: strings.TrimSuffix(opts.DataCiteBase, "/"),
		userAgent:    userAgent,
	}
}

// get performs one rate-limited GET and returns the raw body. Non-200
// responses are classified: 404 is NotFound, everything else Transport.
func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, newError(op, KindTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, newError(op, KindTransport, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newError(op, KindTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, newError(op, KindTransport, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, newError(op, KindNotFound, fmt.Errorf("HTTP %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, newError(op, KindTransport, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	// The legacy API answers some bad identifiers with 200 and a plain
	// text body.
	if strings.HasPrefix(strings.TrimSpace(string(body)), "Resource not found") {
		return nil, newError(op, KindNotFound, nil)
	}

	return body, nil
}

// escapeDOI makes a DOI safe for use as a single path segment.
func escapeDOI(doi string) string {
	return url.PathEscape(doi)
}

// decode unmarshals a JSON envelope, classifying failures as parse errors.
func decode(op string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return newError(op, KindParse, err)
	}

	return nil
}
