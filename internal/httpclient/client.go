// Package httpclient is the thin JSON-over-HTTP wrapper every remote call
// goes through. It attaches the stored session to requests, serializes
// bodies and turns non-2xx responses into errors.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/credential"
	"github.com/nhle/dayboard/internal/logging"
)

// Header names carrying the session.
const (
	HeaderAuthorization = "Authorization"
	HeaderUserID        = "X-User-Id"
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("transport failure")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// CredentialSource supplies the session attached to authenticated requests.
type CredentialSource interface {
	Session() (credential.Session, error)
}

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsJSON reports whether the content type indicates a JSON body.
func (r *Response) IsJSON() bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v interface{}) error {
	if !r.IsJSON() {
		return fmt.Errorf("response is %q, not JSON", r.Header.Get("Content-Type"))
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}

// Option adjusts a single request.
type Option func(*requestOptions)

type requestOptions struct {
	skipAuth bool
	headers  http.Header
}

// SkipAuth sends the request without session headers.
func SkipAuth() Option {
	return func(o *requestOptions) { o.skipAuth = true }
}

// WithHeader sets an extra request header.
func WithHeader(key, value string) Option {
	return func(o *requestOptions) { o.headers.Set(key, value) }
}

// Client performs requests against absolute URLs.
type Client struct {
	httpClient *http.Client
	creds      CredentialSource
	logger     *zap.Logger
}

// NewClient creates a client. creds may be nil, in which case every request
// goes out unauthenticated. A zero timeout leaves the transport default.
func NewClient(creds CredentialSource, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		logger:     logging.OrNop(logger),
	}
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, opts...)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, url string, body interface{}, opts ...Option) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, body, opts...)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, url string, body interface{}, opts ...Option) (*Response, error) {
	return c.Do(ctx, http.MethodPut, url, body, opts...)
}

// Delete performs an HTTP DELETE request. The backend expects the target
// id in a JSON body, so one is allowed here.
func (c *Client) Delete(ctx context.Context, url string, body interface{}, opts ...Option) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, url, body, opts...)
}

// Do is the core method that builds the request, attaches the session and
// checks the status. There is no retry.
func (c *Client) Do(
	ctx context.Context,
	method string,
	url string,
	body interface{},
	opts ...Option,
) (*Response, error) {
	o := requestOptions{headers: make(http.Header)}
	for _, opt := range opts {
		opt(&o)
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range o.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if !o.skipAuth {
		c.authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(out),
		}
	}

	return out, nil
}

// authorize sets the session headers. Without a stored session the request
// is sent as is and the server decides.
func (c *Client) authorize(req *http.Request) {
	if c.creds == nil {
		return
	}
	sess, err := c.creds.Session()
	if err != nil {
		if !errors.Is(err, credential.ErrNoSession) {
			c.logger.Warn("reading session", zap.Error(err))
		}
		return
	}
	if sess.Token != "" {
		req.Header.Set(HeaderAuthorization, "Bearer "+sess.Token)
	}
	if sess.UserID != "" {
		req.Header.Set(HeaderUserID, sess.UserID)
	}
}

// errorMessage prefers the server's own message field.
func errorMessage(resp *Response) string {
	if resp.IsJSON() {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(resp.Body, &payload) == nil {
			if payload.Message != "" {
				return payload.Message
			}
			if payload.Error != "" {
				return payload.Error
			}
		}
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}

// IsAuthError reports whether err is a 401 or 403 response, meaning the
// stored session is missing or expired.
func IsAuthError(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == http.StatusUnauthorized ||
		statusErr.StatusCode == http.StatusForbidden
}
