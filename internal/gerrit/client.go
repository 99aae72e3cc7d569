package gerrit

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const userAgent = "GerritReviewMCP/1.0"

// xssiPrefix is prepended by Gerrit to every JSON response to defeat
// cross-site script inclusion; it must be stripped before decoding.
var xssiPrefix = []byte(")]}'")

// Options configures a Client.
type Options struct {
	// BaseURL is the Gerrit base URL including scheme, without a trailing
	// slash (see config.Config.BaseURL).
	BaseURL string
	// User and Password are the HTTP credentials. An empty Password makes
	// the client anonymous: no auth header, no a/ endpoint prefix, and
	// mutating calls fail locally.
	User     string
	Password string
	// VerifySSL disables TLS certificate verification when false.
	VerifySSL bool
	// Timeout bounds every request including body read.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client is an authenticated Gerrit REST client. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	base     string
	user     string
	password string
	http     *http.Client
	log      *zap.Logger
}

// New creates a Gerrit client from the given options.
func New(opts Options) *Client {
	transport := http.DefaultTransport
	if !opts.VerifySSL {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:     strings.TrimRight(opts.BaseURL, "/"),
		user:     opts.User,
		password: opts.Password,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		log: log,
	}
}

// Authenticated reports whether the client carries an HTTP password.
func (c *Client) Authenticated() bool { return c.password != "" }

// url joins the base URL with an endpoint. Authenticated clients address
// everything under Gerrit's a/ namespace.
func (c *Client) url(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "/")
	if c.password != "" && !strings.HasPrefix(endpoint, "a/") {
		endpoint = "a/" + endpoint
	}
	return c.base + "/" + endpoint
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

// post issues a POST request with a JSON body and decodes the response into
// out. A nil out discards the response body after the status check.
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, in, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return upstreamError("encoding request body: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		return transportError("building request for %s: %v", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.password != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("endpoint", endpoint), zap.Error(err))
		return transportError("%s %s: %v", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError("reading response from %s: %v", endpoint, err)
	}

	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}

	data = bytes.TrimPrefix(data, xssiPrefix)
	if err := json.Unmarshal(bytes.TrimSpace(data), out); err != nil {
		return &Error{
			Kind:    KindUpstream,
			Status:  resp.StatusCode,
			Message: "response from " + endpoint + " is not valid JSON: " + err.Error(),
		}
	}
	return nil
}

// requireAuth guards mutating calls: without a password they fail before
// touching the network.
func (c *Client) requireAuth() error {
	if c.password == "" {
		return authError("HTTP password not set; set GERRIT_HTTP_PASSWORD to use mutating tools")
	}
	return nil
}
