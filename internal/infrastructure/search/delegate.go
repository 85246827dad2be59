// Package search holds the HTTP client for the optional external search
// delegate.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBytes bounds how much of a delegate response is read.
const maxResponseBytes = 1 << 20

// DelegateClient submits queries to the configured delegate endpoint.
// The endpoint receives {"query": "..."} and may answer with a bare list of
// product ids, or an object carrying the list under "productIds" or "ids".
// Anything else counts as zero results rather than an error.
type DelegateClient struct {
	url    string
	client *http.Client
}

// NewDelegateClient builds a client for the given endpoint URL. Timeouts are
// driven entirely by the caller's context.
func NewDelegateClient(url string) *DelegateClient {
	return &DelegateClient{url: url, client: &http.Client{}}
}

type delegateRequest struct {
	Query string `json:"query"`
}

// idListEnvelope covers the recognized object-shaped responses.
type idListEnvelope struct {
	ProductIDs []string `json:"productIds"`
	IDs        []string `json:"ids"`
}

// Query posts the search query and extracts product ids from whichever
// recognized shape the delegate answered with.
func (d *DelegateClient) Query(ctx context.Context, query string) ([]string, error) {
	body, err := json.Marshal(delegateRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("encode delegate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build delegate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("delegate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("delegate responded %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read delegate response: %w", err)
	}

	return extractIDs(raw), nil
}

// extractIDs decodes the recognized response shapes in order. Unrecognized
// payloads yield an empty list, which the resolver treats as "no results".
func extractIDs(raw []byte) []string {
	var bare []string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}

	var envelope idListEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if len(envelope.ProductIDs) > 0 {
			return envelope.ProductIDs
		}
		if len(envelope.IDs) > 0 {
			return envelope.IDs
		}
	}
	return nil
}
