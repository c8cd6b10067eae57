// Package forwarder delivers parsed records to the collection side.
package forwarder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// ErrForwardStatus wraps non-2xx responses from the collection endpoint.
var ErrForwardStatus = errors.New("forwarder: unexpected status")

const defaultHTTPTimeout = 10 * time.Second

type HTTPForwarder struct {
	url     string
	client  *fasthttp.Client
	timeout time.Duration
}

type HTTPOption func(*HTTPForwarder)

// WithClient swaps the fasthttp client, e.g. for an in-memory dialer.
func WithClient(c *fasthttp.Client) HTTPOption {
	return func(f *HTTPForwarder) {
		if c != nil {
			f.client = c
		}
	}
}

func NewHTTPForwarder(url string, timeout time.Duration, opts ...HTTPOption) *HTTPForwarder {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	f := &HTTPForwarder{
		url:     url,
		timeout: timeout,
		client: &fasthttp.Client{
			Name:                "weatherfwd",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *HTTPForwarder) Name() string { return "http" }

// Send posts r as JSON. Only a 2xx response counts as delivered.
func (f *HTTPForwarder) Send(ctx context.Context, r *domain.Record) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(f.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBodyRaw(body)

	if err := f.do(ctx, req, resp); err != nil {
		return fmt.Errorf("post %s: %w", f.url, err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fmt.Errorf("%w: %d from %s", ErrForwardStatus, code, f.url)
	}
	return nil
}

// Fetch issues a GET against the collection URL and returns the body.
func (f *HTTPForwarder) Fetch(ctx context.Context) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(f.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := f.do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("get %s: %w", f.url, err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, fmt.Errorf("%w: %d from %s", ErrForwardStatus, code, f.url)
	}
	return append([]byte(nil), resp.Body()...), nil
}

func (f *HTTPForwarder) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	deadline := time.Now().Add(f.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return f.client.DoDeadline(req, resp, deadline)
}

var _ ports.Forwarder = (*HTTPForwarder)(nil)
