// Package http implements the request pipeline shared by every API call:
// URL and header construction, per-attempt timeouts, retries with
// exponential backoff, rate-limit tracking and error translation.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net"
	stdhttp "net/http"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/fivetwenty-io/econ-client/internal/constants"
	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/hashicorp/go-retryablehttp"
)

// Request is a single logical API call.
type Request struct {
	Method  string
	Path    string
	Params  econ.Params
	Body    interface{}
	Headers map[string]string
	// APIKey overrides the client's key for this call only.
	APIKey string
}

// Response is the raw outcome of a call.
type Response struct {
	StatusCode int
	Header     stdhttp.Header
	Body       []byte
	Cached     bool
}

// Client issues API calls. It is safe for concurrent use; the only state
// shared between calls is the rate-limit snapshot.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	headers    map[string]string
	userAgent  string
	timeout    time.Duration
	retry      bool
	maxRetries int
	retryMin   time.Duration
	retryMax   time.Duration

	httpClient   *stdhttp.Client
	retryClient  *retryablehttp.Client
	logger       econ.Logger
	debug        bool
	interceptors *econ.InterceptorChain
	cache        econ.Cache
	cacheTTL     time.Duration
	validator    *econ.EnvelopeValidator

	rateLimit atomic.Pointer[econ.RateLimit]
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the default bearer credential.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithHeaders sets headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = maps.Clone(headers)
	}
}

// WithTimeout bounds each network attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig sets the retry budget and backoff. Attempt n waits
// retryWaitMin * 2^n; a positive retryWaitMax caps the wait.
func WithRetryConfig(maxRetries int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.retry = true
		c.maxRetries = maxRetries
		c.retryMin = retryWaitMin
		c.retryMax = retryWaitMax
	}
}

// WithoutRetry makes every call a single attempt.
func WithoutRetry() Option {
	return func(c *Client) {
		c.retry = false
	}
}

// WithLogger sets the logger.
func WithLogger(logger econ.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *econ.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithCache caches successful GET responses for ttl.
func WithCache(cache econ.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithEnvelopeValidator validates every success body before it is returned.
func WithEnvelopeValidator(validator *econ.EnvelopeValidator) Option {
	return func(c *Client) {
		c.validator = validator
	}
}

// WithHTTPClient uses client's transport. Its Timeout is replaced by the
// configured per-attempt timeout.
func WithHTTPClient(client *stdhttp.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", econ.ErrInvalidBaseURL, err)
	}

	client := &Client{
		baseURL:    parsed,
		headers:    map[string]string{},
		userAgent:  constants.DefaultUserAgent,
		timeout:    constants.DefaultHTTPTimeout,
		retry:      true,
		maxRetries: constants.DefaultRetryMax,
		retryMin:   constants.DefaultRetryDelay,
		logger:     econ.NopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger == nil {
		client.logger = econ.NopLogger{}
	}

	if client.cacheTTL <= 0 {
		client.cacheTTL = constants.DefaultCacheTTL
	}

	client.retryClient = client.newRetryClient()

	return client, nil
}

func (c *Client) newRetryClient() *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	if c.httpClient != nil {
		httpClient := *c.httpClient
		retryClient.HTTPClient = &httpClient
	}

	retryClient.HTTPClient.Timeout = c.timeout

	retryClient.RetryMax = 0
	if c.retry {
		retryClient.RetryMax = c.maxRetries
	}

	retryClient.RetryWaitMin = c.retryMin
	retryClient.RetryWaitMax = c.retryMax
	retryClient.CheckRetry = c.checkRetry
	retryClient.Backoff = exponentialBackoff
	retryClient.ErrorHandler = transportErrorHandler
	retryClient.RequestLogHook = c.logRequest
	retryClient.ResponseLogHook = c.logResponse

	return retryClient
}

// LastRateLimit returns a copy of the most recent rate-limit snapshot, or
// nil when no response has carried the rate-limit headers.
func (c *Client) LastRateLimit() *econ.RateLimit {
	snapshot := c.rateLimit.Load()
	if snapshot == nil {
		return nil
	}

	out := *snapshot

	return &out
}

// Execute performs a call and returns the success envelope with data left
// undecoded. Non-2xx responses fail with *econ.Error, network failures
// with *econ.TransportError.
func (c *Client) Execute(ctx context.Context, path string, opts *econ.RequestOptions) (*econ.Envelope[json.RawMessage], error) {
	if opts == nil {
		opts = &econ.RequestOptions{}
	}

	resp, err := c.Do(ctx, &Request{
		Method:  opts.Method,
		Path:    path,
		Params:  opts.Params,
		Body:    opts.Body,
		Headers: opts.Headers,
		APIKey:  opts.APIKey,
	})
	if err != nil {
		return nil, err
	}

	return c.decodeEnvelope(resp.Body)
}

// Do performs a call and returns the raw response. For non-2xx statuses
// both the response and an *econ.Error are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Path == "" {
		return nil, econ.ErrEmptyPath
	}

	method := req.Method
	if method == "" {
		method = stdhttp.MethodGet
	}

	fullURL, err := c.buildURL(req.Path, req.Params)
	if err != nil {
		return nil, err
	}

	var body []byte

	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	apiKey := c.apiKey
	if req.APIKey != "" {
		apiKey = req.APIKey
	}

	call := &econ.Request{
		Method:   method,
		Path:     req.Path,
		URL:      fullURL,
		Headers:  c.buildHeaders(req.Headers, apiKey),
		Body:     body,
		Metadata: map[string]interface{}{},
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, call)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	resp, err := c.send(ctx, call, apiKey)

	if c.interceptors != nil {
		outcome := &econ.Response{Error: err}
		if resp != nil {
			outcome.StatusCode = resp.StatusCode
			outcome.Headers = resp.Header
			outcome.Body = resp.Body
			outcome.Cached = resp.Cached
		}

		interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, call, outcome)
		if interceptErr != nil && err == nil {
			return resp, interceptErr //nolint:wrapcheck
		}
	}

	return resp, err
}

func (c *Client) send(ctx context.Context, call *econ.Request, apiKey string) (*Response, error) {
	cacheKey := ""
	if c.cache != nil && call.Method == stdhttp.MethodGet {
		cacheKey = econ.CacheKey(call.Method, call.URL, apiKey)

		entry, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			return &Response{
				StatusCode: entry.StatusCode,
				Header:     entry.Headers,
				Body:       entry.Data,
				Cached:     true,
			}, nil
		}
	}

	var rawBody interface{}
	if len(call.Body) > 0 {
		rawBody = call.Body
	}

	state := &callState{}

	retryReq, err := retryablehttp.NewRequestWithContext(
		context.WithValue(ctx, callStateKey{}, state), call.Method, call.URL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	retryReq.Header = call.Headers

	httpResp, err := c.retryClient.Do(retryReq)
	if err != nil {
		return nil, c.transportError(call, state, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &econ.TransportError{
			Method:   call.Method,
			URL:      call.URL,
			Attempts: int(state.attempts.Load()),
			Err:      fmt.Errorf("reading response body: %w", err),
		}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}

	if !isSuccess(resp.StatusCode) {
		apiErr := econ.ParseErrorResponse(resp.StatusCode, respBody)
		if apiErr.RequestID == "" {
			apiErr.RequestID = httpResp.Header.Get(constants.HeaderRequestID)
		}

		return resp, apiErr
	}

	if cacheKey != "" {
		_ = c.cache.Set(ctx, cacheKey, &econ.CacheEntry{
			Data:       respBody,
			Headers:    httpResp.Header.Clone(),
			StatusCode: resp.StatusCode,
			ExpiresAt:  time.Now().Add(c.cacheTTL),
			ETag:       httpResp.Header.Get(constants.HeaderETag),
		})
	}

	return resp, nil
}

func (c *Client) transportError(call *econ.Request, state *callState, err error) error {
	transportErr := &econ.TransportError{}
	if !errors.As(err, &transportErr) {
		transportErr = &econ.TransportError{Err: err, Attempts: int(state.attempts.Load())}
	}

	transportErr.Method = call.Method
	transportErr.URL = call.URL

	c.logger.Error("HTTP Request Failed", map[string]interface{}{
		"method":   call.Method,
		"url":      call.URL,
		"attempts": transportErr.Attempts,
		"error":    transportErr.Err.Error(),
	})

	return transportErr
}

func (c *Client) decodeEnvelope(body []byte) (*econ.Envelope[json.RawMessage], error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return &econ.Envelope[json.RawMessage]{Success: true}, nil
	}

	if c.validator != nil {
		err := c.validator.Validate(body)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	var envelope econ.Envelope[json.RawMessage]

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", econ.ErrInvalidEnvelope, err)
	}

	return &envelope, nil
}

// buildURL resolves path against the base URL and appends params in order.
func (c *Client) buildURL(path string, params econ.Params) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parsing path %q: %w", path, err)
	}

	resolved := c.baseURL.ResolveReference(ref)

	if query := params.Encode(); query != "" {
		if resolved.RawQuery != "" {
			resolved.RawQuery += "&" + query
		} else {
			resolved.RawQuery = query
		}
	}

	return resolved.String(), nil
}

// buildHeaders layers defaults, client headers, call headers and finally
// the bearer credential.
func (c *Client) buildHeaders(callHeaders map[string]string, apiKey string) stdhttp.Header {
	headers := make(stdhttp.Header)
	headers.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	headers.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	headers.Set(constants.HeaderUserAgent, c.userAgent)

	for key, value := range c.headers {
		headers.Set(key, value)
	}

	for key, value := range callHeaders {
		headers.Set(key, value)
	}

	if apiKey != "" {
		headers.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	}

	return headers
}

// recordRateLimit stores the rate-limit headers of resp when all three are
// present and numeric.
func (c *Client) recordRateLimit(resp *stdhttp.Response) {
	limit, err := strconv.Atoi(resp.Header.Get(constants.HeaderRateLimitLimit))
	if err != nil {
		return
	}

	remaining, err := strconv.Atoi(resp.Header.Get(constants.HeaderRateLimitRemaining))
	if err != nil {
		return
	}

	reset, err := strconv.ParseInt(resp.Header.Get(constants.HeaderRateLimitReset), 10, 64)
	if err != nil {
		return
	}

	c.rateLimit.Store(&econ.RateLimit{Limit: limit, Remaining: remaining, Reset: reset})
}

// checkRetry sees the outcome of every attempt.
func (c *Client) checkRetry(ctx context.Context, resp *stdhttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return isRetryableTransportError(err), nil
	}

	c.recordRateLimit(resp)

	switch {
	case resp.StatusCode >= constants.HTTPStatusInternalServerError:
		return true, nil
	case resp.StatusCode == stdhttp.StatusTooManyRequests:
		return true, nil
	case resp.StatusCode >= constants.HTTPStatusBadRequest:
		return hasRateLimitCode(resp), nil
	default:
		return false, nil
	}
}

// hasRateLimitCode peeks at a 4xx body for the rate-limit error code. The
// body is replaced so it can still be read afterwards.
func hasRateLimitCode(resp *stdhttp.Response) bool {
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if err != nil {
		return false
	}

	envelope, err := econ.ParseErrorEnvelope(data)
	if err != nil {
		return false
	}

	return envelope.Error.Code == econ.ErrorCodeRateLimited
}

func isRetryableTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}

		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	for _, target := range []error{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		io.EOF,
		io.ErrUnexpectedEOF,
		os.ErrDeadlineExceeded,
		context.DeadlineExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// exponentialBackoff waits minWait * 2^attemptNum, capped by a positive
// maxWait. There is no jitter.
func exponentialBackoff(minWait, maxWait time.Duration, attemptNum int, _ *stdhttp.Response) time.Duration {
	shift := min(attemptNum, constants.MaxBackoffShift)
	wait := minWait * time.Duration(int64(1)<<shift)

	if maxWait > 0 && wait > maxWait {
		return maxWait
	}

	return wait
}

// transportErrorHandler runs once retries stop. An exhausted HTTP failure
// is handed back as a response so it is translated like any other status.
func transportErrorHandler(resp *stdhttp.Response, err error, numTries int) (*stdhttp.Response, error) {
	if err == nil && resp != nil {
		return resp, nil
	}

	if resp != nil {
		_ = resp.Body.Close()
	}

	return nil, &econ.TransportError{Attempts: numTries, Err: err}
}

type callStateKey struct{}

type callState struct {
	attempts atomic.Int32
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *stdhttp.Request, attempt int) {
	if state, ok := req.Context().Value(callStateKey{}).(*callState); ok {
		state.attempts.Store(int32(attempt + 1)) //nolint:gosec
	}

	if attempt > 0 {
		c.logger.Warn("Retrying request", map[string]interface{}{
			"method":  req.Method,
			"url":     req.URL.String(),
			"attempt": attempt,
		})
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  req.Method,
			"url":     req.URL.String(),
			"attempt": attempt,
		})
	}
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *stdhttp.Response) {
	if !c.debug {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"status_code": resp.StatusCode,
		"url":         resp.Request.URL.String(),
	})
}

func isSuccess(statusCode int) bool {
	return statusCode >= constants.HTTPStatusOK && statusCode < constants.HTTPStatusMultipleChoices
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, params econ.Params) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodGet, Path: path, Params: params})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodDelete, Path: path})
}
