// Package dispatch executes authorized requests against the Koywe API and
// classifies responses into payloads or *apierr.Error values.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/koywe/apierr"
	"github.com/dmitrijs2005/koywe/logging"
	"github.com/dmitrijs2005/koywe/metrics"
)

// DefaultTimeout is the fixed per-request timeout used when Config carries no
// HTTP client.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader is set on every request unless the caller provides one.
const RequestIDHeader = "X-Request-ID"

// Authorizer supplies authorization headers and drops the session when the
// API rejects it. *auth.Manager implements it.
type Authorizer interface {
	EnsureValidHeaders(ctx context.Context) (http.Header, error)
	Clear()
}

// Request describes one API call. Path is relative to the base URL; leading
// slashes are ignored. A nil Body sends no body.
type Request struct {
	Method string
	Path   string
	Body   any
	Query  url.Values
	Header http.Header
}

// Config wires a Dispatcher. A nil HTTPClient uses DefaultTimeout and a nil
// Logger discards output.
type Config struct {
	BaseURL    string
	Authorizer Authorizer
	HTTPClient *http.Client
	Logger     logging.Logger
	Metrics    *metrics.Collectors
}

// Dispatcher sends authorized requests and classifies their responses.
type Dispatcher struct {
	baseURL    string
	authorizer Authorizer
	httpClient *http.Client
	log        logging.Logger
	metrics    *metrics.Collectors
}

// New returns a Dispatcher for cfg. The base URL loses any trailing slash.
func New(cfg Config) *Dispatcher {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Dispatcher{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authorizer: cfg.Authorizer,
		httpClient: httpClient,
		log:        logging.OrNop(cfg.Logger).With("component", "dispatch"),
		metrics:    cfg.Metrics,
	}
}

// URL joins the base URL and path.
func (d *Dispatcher) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Execute sends r and returns the decoded JSON object of a 200/201 response.
//
// A 401 clears the authorizer's session before the error is returned, so the
// next call authenticates again; the failed request itself is not retried.
func (d *Dispatcher) Execute(ctx context.Context, r Request) (Payload, error) {
	start := time.Now()
	payload, err := d.execute(ctx, r)

	outcome := "success"
	if kind, ok := apierr.KindOf(err); ok {
		outcome = kind.String()
	} else if err != nil {
		outcome = "error"
	}
	d.metrics.ObserveRequest(r.Method, outcome, time.Since(start))
	return payload, err
}

func (d *Dispatcher) execute(ctx context.Context, r Request) (Payload, error) {
	target := d.URL(r.Path)
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, apierr.Wrap(apierr.KindValidation, fmt.Sprintf("failed to encode request body: %v", err), err)
		}
		body = bytes.NewReader(b)
	}

	authHeader, err := d.authorizer.EnsureValidHeaders(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindNetwork, fmt.Sprintf("network error: %v", err), err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, vs := range r.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, vs := range authHeader {
		req.Header[k] = append([]string(nil), vs...)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	requestID := req.Header.Get(RequestIDHeader)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.log.Debug(ctx, "request failed", "method", r.Method, "path", r.Path, "request_id", requestID, "error", err)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	d.log.Debug(ctx, "request completed",
		"method", r.Method, "path", r.Path, "status", resp.StatusCode, "request_id", requestID)

	return d.classify(resp.StatusCode, raw)
}

func (d *Dispatcher) classify(status int, raw []byte) (Payload, error) {
	body := apierr.ParseBody(raw)

	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		if nonObjectJSON(raw) {
			e := apierr.New(apierr.KindAPI, "unexpected response: body is not a JSON object", status, nil)
			e.Err = fmt.Errorf("response body: %s", truncate(raw, maxBodyInError))
			return nil, e
		}
		return Payload(body), nil
	case status == http.StatusBadRequest:
		return nil, apierr.New(apierr.KindValidation, "bad request - validation failed", status, body)
	case status == http.StatusUnauthorized:
		d.authorizer.Clear()
		return nil, apierr.New(apierr.KindAuthentication, "authentication failed", status, body)
	case status == http.StatusNotFound:
		return nil, apierr.New(apierr.KindNotFound, "resource not found", status, body)
	case status == http.StatusTooManyRequests:
		return nil, apierr.New(apierr.KindRateLimit, "rate limit exceeded", status, body)
	case status >= 500 && status < 600:
		return nil, apierr.New(apierr.KindServer, fmt.Sprintf("server error: %d", status), status, body)
	default:
		return nil, apierr.New(apierr.KindAPI, fmt.Sprintf("unexpected error: %d", status), status, body)
	}
}

const maxBodyInError = 512

// nonObjectJSON reports whether raw is valid JSON holding an array, string,
// number or boolean. Empty bodies, null and invalid JSON are not reported.
func nonObjectJSON(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '{' || bytes.Equal(raw, []byte("null")) {
		return false
	}
	return json.Valid(raw)
}

func truncate(raw []byte, n int) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n]) + "..."
}

// transportError normalizes an http.Client failure into a network *apierr.Error.
func transportError(err error) error {
	if isTimeout(err) {
		return apierr.Wrap(apierr.KindNetwork, "request timed out", err)
	}
	if isConnectionError(err) {
		return apierr.Wrap(apierr.KindNetwork, "connection error occurred", err)
	}
	return apierr.Wrap(apierr.KindNetwork, fmt.Sprintf("network error: %v", err), err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isConnectionError(err error) bool {
	var (
		opErr  *net.OpError
		dnsErr *net.DNSError
	)
	switch {
	case errors.As(err, &dnsErr), errors.As(err, &opErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return false
}
