package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

// maxDocumentSize bounds the body read from an HTTP source.
const maxDocumentSize = 10 << 20

// HTTPOptions configures an HTTPFetcher.
type HTTPOptions struct {
	// Token is sent as a bearer token when non-empty.
	Token string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// Transport overrides http.DefaultTransport.
	Transport http.RoundTripper
}

// HTTPFetcher serves http and https references.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
			Base:   transport,
		}
	}
	return &HTTPFetcher{client: &http.Client{Transport: transport, Timeout: opts.Timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, ref reference.ConfigRef) ([]byte, error) {
	hr, ok := ref.(reference.HTTPRef)
	if !ok {
		return nil, unsupported(ref)
	}
	url := hr.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/yaml, application/json;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("fetching %s: %w", url, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("fetching %s: document exceeds %d bytes", url, maxDocumentSize)
	}
	return data, nil
}
