package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

const (
	defaultPathPrefix = "/ipfs/"
	defaultTimeout    = 30 * time.Second
)

// Client is a Gateway backed by an HTTP path gateway: payloads are fetched
// with GET <base><prefix><cid>.
type Client struct {
	baseURL *url.URL
	prefix  string
	client  *nethttp.Client
	headers nethttp.Header
	zstd    bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests. The client's
// timeout is the only deadline enforced on a single gateway call.
func WithHTTPClient(client *nethttp.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithHeader sets a single header on each request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(nethttp.Header)
		}
		c.headers.Set(key, value)
	}
}

// WithPathPrefix overrides the path prefix prepended to the CID.
// The default is "/ipfs/".
func WithPathPrefix(prefix string) Option {
	return func(c *Client) {
		if !strings.HasPrefix(prefix, "/") {
			prefix = "/" + prefix
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		c.prefix = prefix
	}
}

// WithZstd advertises zstd content encoding and transparently decodes
// responses the gateway compresses with it.
func WithZstd() Option {
	return func(c *Client) {
		c.zstd = true
	}
}

// NewClient creates a Client for the given gateway base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("gateway: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: parsed,
		prefix:  defaultPathPrefix,
		client:  &nethttp.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Get fetches the payload addressed by cid.
func (c *Client) Get(ctx context.Context, cid string) ([]byte, error) {
	if strings.TrimSpace(cid) == "" {
		return nil, &Error{Message: "cid is required"}
	}

	ref := &url.URL{Path: c.prefix + cid}
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, c.baseURL.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if c.zstd {
		req.Header.Set("Accept-Encoding", "zstd")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: request %s: %w", cid, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(resp, cid)
	}

	body := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "zstd" {
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gateway: zstd reader: %w", err)
		}
		defer dec.Close()
		body = dec
	}

	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read payload %s: %w", cid, err)
	}
	return payload, nil
}

// statusError maps a non-2xx response to a typed gateway error. Forbidden
// and unauthorized responses are marked as authentication failures so the
// fetcher does not retry them.
func (c *Client) statusError(resp *nethttp.Response, cid string) error {
	gerr := &Error{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("fetch %s: %s", cid, resp.Status),
	}
	switch resp.StatusCode {
	case nethttp.StatusForbidden, nethttp.StatusUnauthorized:
		gerr.Name = "AuthenticationError"
		gerr.Code = CodeAuthenticationFailed
	}
	return gerr
}
