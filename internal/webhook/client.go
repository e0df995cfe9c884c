// Package webhook posts completed orders to the remote intake endpoint.
//
// The endpoint is a black-box HTTP sink: it never returns a usable body, so
// the client distinguishes only "bytes were sent" from "transport failed".
// Business acceptance is unconfirmable by design.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/michiko-bakery/storefront-api/internal/order"
)

// SubmissionError indicates the order could not be delivered at the
// transport level. The caller's cart and form must be left intact so the
// user can retry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Client submits orders to a single configured endpoint.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// NewClient creates a Client for the given endpoint URL. timeout bounds the
// whole request; zero means no client-side timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var _ order.Submitter = (*Client)(nil)

// Submit POSTs the serialized order and discards the response.
//
// Any completed HTTP exchange counts as success regardless of status code:
// the endpoint's responses are opaque, and inventing a rejection signal the
// sink does not offer would be a lie. Only network-level failures return a
// *SubmissionError.
func (c *Client) Submit(ctx context.Context, o *order.Order) error {
	body := encodeOrder(o)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &SubmissionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
