package fmg

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"fmg-mcp/internal/config"
	"fmg-mcp/internal/logger"
	"fmg-mcp/internal/validation"
)

// Client speaks the FortiManager JSON-RPC dialect: a single-element
// params array carrying the endpoint URL, a verb in the method field and
// a session ID established by exec /sys/login/user (or an API token used
// directly as the session).
type Client struct {
	host       string
	baseURL    string
	username   string
	password   string
	apiToken   string
	httpClient *http.Client

	mu      sync.Mutex
	session string
	nextID  int
}

// NewClient creates a client from configuration. The connection is not
// established until Connect is called.
func NewClient(cfg *config.Config) *Client {
	host := strings.TrimPrefix(cfg.Host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")

	addr := host
	if cfg.Port != 443 {
		addr = fmt.Sprintf("%s:%d", host, cfg.Port)
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.VerifySSL},
	}

	return &Client{
		host:     host,
		baseURL:  fmt.Sprintf("https://%s/jsonrpc", addr),
		username: cfg.Username,
		password: cfg.Password,
		apiToken: cfg.APIToken,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

type rpcRequest struct {
	ID      int              `json:"id"`
	Method  string           `json:"method"`
	Params  []map[string]any `json:"params"`
	Session string           `json:"session,omitempty"`
}

type rpcStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResult struct {
	URL    string          `json:"url"`
	Status rpcStatus       `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type rpcResponse struct {
	ID      int         `json:"id"`
	Result  []rpcResult `json:"result"`
	Session string      `json:"session"`
}

// Connect authenticates against FortiManager. With an API token the
// token itself acts as the session; with username/password a login call
// establishes one.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.session != "" {
		c.mu.Unlock()
		logger.Warn("Client already connected to %s", c.host)
		return nil
	}
	c.mu.Unlock()

	logger.Info("Connecting to FortiManager at %s", c.host)

	if c.apiToken != "" {
		c.mu.Lock()
		c.session = c.apiToken
		c.mu.Unlock()

		// Verify the token works before reporting success.
		if _, err := c.Get(ctx, "/sys/status", nil); err != nil {
			c.mu.Lock()
			c.session = ""
			c.mu.Unlock()
			return err
		}
		logger.Info("Connected to FortiManager using API token")
		return nil
	}

	if c.username == "" || c.password == "" {
		return &Error{
			Kind:    KindAuth,
			Message: "no authentication provided: set API token or username/password",
		}
	}

	resp, err := c.do(ctx, "exec", "/sys/login/user", map[string]any{
		"data": map[string]any{"user": c.username, "passwd": c.password},
	})
	if err != nil {
		return err
	}

	if len(resp.Result) == 0 || resp.Result[0].Status.Code != 0 {
		msg := "login failed"
		if len(resp.Result) > 0 {
			msg = resp.Result[0].Status.Message
		}
		return &Error{
			Operation: "EXEC /sys/login/user",
			Kind:      KindAuth,
			Code:      statusCode(resp),
			Message:   fmt.Sprintf("FortiManager login failed: %s", msg),
		}
	}

	if resp.Session == "" {
		return &Error{
			Operation: "EXEC /sys/login/user",
			Kind:      KindAuth,
			Message:   "login succeeded but no session returned",
		}
	}

	c.mu.Lock()
	c.session = resp.Session
	c.mu.Unlock()

	logger.Info("Successfully connected to FortiManager")
	return nil
}

func statusCode(resp *rpcResponse) int {
	if len(resp.Result) == 0 {
		return 0
	}
	return resp.Result[0].Status.Code
}

// Close logs out and releases the session. Logout failures are logged
// but never returned; the session is dropped either way.
func (c *Client) Close(ctx context.Context) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session == "" {
		return
	}

	if c.apiToken == "" {
		if _, err := c.Exec(ctx, "/sys/logout", nil); err != nil {
			logger.Warn("Logout failed: %v", err)
		}
	}

	c.mu.Lock()
	c.session = ""
	c.mu.Unlock()

	logger.Info("Disconnected from FortiManager")
}

// IsConnected reports whether an authenticated session exists.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != ""
}

// do sends one JSON-RPC request and decodes the envelope without
// interpreting the status code.
func (c *Client) do(ctx context.Context, method, url string, params map[string]any) (*rpcResponse, error) {
	operation := fmt.Sprintf("%s %s", strings.ToUpper(method), url)

	body := map[string]any{"url": url}
	for k, v := range params {
		body[k] = v
	}

	c.mu.Lock()
	c.nextID++
	req := rpcRequest{
		ID:      c.nextID,
		Method:  method,
		Params:  []map[string]any{body},
		Session: c.session,
	}
	c.mu.Unlock()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, connectionError(operation, fmt.Errorf("error marshaling request: %w", err))
	}

	start := time.Now()
	logger.Debug("Starting %s (params: %s)", operation, validation.SanitizeJSONForLogging(body))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, connectionError(operation, fmt.Errorf("error creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("%s failed after %v: %v", operation, time.Since(start), err)
		return nil, connectionError(operation, err)
	}
	defer httpResp.Body.Close()

	logger.Debug("%s completed in %v with HTTP status %d", operation, time.Since(start), httpResp.StatusCode)

	if httpResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(httpResp.Body)
		logger.Error("%s: HTTP error %d: %s", operation, httpResp.StatusCode, string(bodyBytes))
		return nil, connectionError(operation, fmt.Errorf("HTTP error %d: %s", httpResp.StatusCode, string(bodyBytes)))
	}

	var resp rpcResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		logger.Error("%s: error decoding response: %v", operation, err)
		return nil, connectionError(operation, fmt.Errorf("error decoding response: %w", err))
	}

	return &resp, nil
}

// request sends a request and translates the result status, returning
// the raw data payload on success.
func (c *Client) request(ctx context.Context, method, url string, params map[string]any) (json.RawMessage, error) {
	operation := fmt.Sprintf("%s %s", strings.ToUpper(method), url)

	if !c.IsConnected() {
		return nil, connectionError(operation, fmt.Errorf("not connected: call Connect first"))
	}

	resp, err := c.do(ctx, method, url, params)
	if err != nil {
		return nil, err
	}

	if len(resp.Result) == 0 {
		return nil, connectionError(operation, fmt.Errorf("empty result in response"))
	}

	result := resp.Result[0]
	if result.Status.Code != 0 {
		return nil, parseStatusError(result.Status.Code, result.Status.Message, operation)
	}

	return result.Data, nil
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, url string, params map[string]any) (json.RawMessage, error) {
	return c.request(ctx, "get", url, params)
}

// Add executes an ADD request.
func (c *Client) Add(ctx context.Context, url string, params map[string]any) (json.RawMessage, error) {
	return c.request(ctx, "add", url, params)
}

// Set executes a SET request.
func (c *Client) Set(ctx context.Context, url string, params map[string]any) (json.RawMessage, error) {
	return c.request(ctx, "set", url, params)
}

// Update executes an UPDATE request.
func (c *Client) Update(ctx context.Context, url string, params map[string]any) (json.RawMessage, error) {
	return c.request(ctx, "update", url, params)
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, params map[string]any) (json.RawMessage, error) {
	return c.request(ctx, "delete", url, params)
}

// Exec executes an EXEC request.
func (c *Client) Exec(ctx context.Context, url string, params map[string]any) (json.RawMessage, error) {
	return c.request(ctx, "exec", url, params)
}

// decodeList normalizes payloads that FortiManager returns either as a
// single object or as an array of objects.
func decodeList(raw json.RawMessage) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var list []map[string]any
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("error decoding list payload: %w", err)
		}
		return list, nil
	}

	var single map[string]any
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, fmt.Errorf("error decoding payload: %w", err)
	}
	return []map[string]any{single}, nil
}

// getList performs a GET and normalizes the payload to a list.
func (c *Client) getList(ctx context.Context, url string, params map[string]any) ([]map[string]any, error) {
	raw, err := c.Get(ctx, url, params)
	if err != nil {
		return nil, err
	}
	return decodeList(raw)
}
