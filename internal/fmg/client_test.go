package fmg

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmg-mcp/internal/config"
)

// fakeFMG is a scripted JSON-RPC endpoint. Each incoming request is
// recorded and answered with the next queued response.
type fakeFMG struct {
	t         *testing.T
	server    *httptest.Server
	requests  []rpcRequest
	responses []map[string]any
}

func newFakeFMG(t *testing.T) *fakeFMG {
	f := &fakeFMG{t: t}
	f.server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/jsonrpc", r.URL.Path)

		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.requests = append(f.requests, req)

		require.NotEmpty(t, f.responses, "unexpected request: %s %s", req.Method, paramURL(req))
		resp := f.responses[0]
		f.responses = f.responses[1:]

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeFMG) queue(resp map[string]any) {
	f.responses = append(f.responses, resp)
}

func (f *fakeFMG) client(t *testing.T, cfg func(*config.Config)) *Client {
	u, err := url.Parse(f.server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	c := config.NewConfig()
	c.Host = u.Hostname()
	c.Port = port
	c.Timeout = 5 * time.Second
	if cfg != nil {
		cfg(c)
	}
	return NewClient(c)
}

func paramURL(req rpcRequest) string {
	if len(req.Params) == 0 {
		return ""
	}
	u, _ := req.Params[0]["url"].(string)
	return u
}

func okResponse(data any) map[string]any {
	return map[string]any{
		"id": 1,
		"result": []map[string]any{{
			"status": map[string]any{"code": 0, "message": "OK"},
			"data":   data,
		}},
	}
}

func errResponse(code int, message string) map[string]any {
	return map[string]any{
		"id": 1,
		"result": []map[string]any{{
			"status": map[string]any{"code": code, "message": message},
		}},
	}
}

func TestConnectWithCredentials(t *testing.T) {
	fake := newFakeFMG(t)
	fake.queue(map[string]any{
		"id":      1,
		"session": "session-abc",
		"result": []map[string]any{{
			"status": map[string]any{"code": 0, "message": "OK"},
		}},
	})

	client := fake.client(t, func(c *config.Config) {
		c.Username = "admin"
		c.Password = "secret"
	})

	require.NoError(t, client.Connect(context.Background()))
	assert.True(t, client.IsConnected())

	require.Len(t, fake.requests, 1)
	login := fake.requests[0]
	assert.Equal(t, "exec", login.Method)
	assert.Equal(t, "/sys/login/user", paramURL(login))
	assert.Empty(t, login.Session, "login must not carry a session")

	data, ok := login.Params[0]["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin", data["user"])
	assert.Equal(t, "secret", data["passwd"])
}

func TestConnectWithCredentialsRejected(t *testing.T) {
	fake := newFakeFMG(t)
	fake.queue(errResponse(-22, "Login fail"))

	client := fake.client(t, func(c *config.Config) {
		c.Username = "admin"
		c.Password = "wrong"
	})

	err := client.Connect(context.Background())
	require.Error(t, err)
	assert.False(t, client.IsConnected())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAuth, apiErr.Kind)
}

func TestConnectWithAPIToken(t *testing.T) {
	fake := newFakeFMG(t)
	fake.queue(okResponse(map[string]any{"Version": "v7.4.3"}))

	client := fake.client(t, func(c *config.Config) {
		c.APIToken = "token-123"
	})

	require.NoError(t, client.Connect(context.Background()))
	assert.True(t, client.IsConnected())

	// The token acts as the session and is verified with a status call.
	require.Len(t, fake.requests, 1)
	verify := fake.requests[0]
	assert.Equal(t, "get", verify.Method)
	assert.Equal(t, "/sys/status", paramURL(verify))
	assert.Equal(t, "token-123", verify.Session)
}

func TestConnectWithInvalidAPIToken(t *testing.T) {
	fake := newFakeFMG(t)
	fake.queue(errResponse(-21, "Invalid token"))

	client := fake.client(t, func(c *config.Config) {
		c.APIToken = "stale"
	})

	err := client.Connect(context.Background())
	require.Error(t, err)
	assert.False(t, client.IsConnected(), "failed verification must drop the session")
	assert.True(t, IsAuthError(err))
}

func TestConnectWithoutCredentials(t *testing.T) {
	fake := newFakeFMG(t)
	client := fake.client(t, nil)

	err := client.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Empty(t, fake.requests)
}

func TestRequestRequiresConnection(t *testing.T) {
	fake := newFakeFMG(t)
	client := fake.client(t, func(c *config.Config) {
		c.APIToken = "token"
	})

	_, err := client.Get(context.Background(), "/sys/status", nil)
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
	assert.Empty(t, fake.requests)
}

func connectedClient(t *testing.T, fake *fakeFMG) *Client {
	fake.queue(okResponse(map[string]any{}))
	client := fake.client(t, func(c *config.Config) {
		c.APIToken = "token"
	})
	require.NoError(t, client.Connect(context.Background()))
	fake.requests = nil
	return client
}

func TestVerbsBuildCorrectEnvelopes(t *testing.T) {
	fake := newFakeFMG(t)
	client := connectedClient(t, fake)
	ctx := context.Background()

	calls := []struct {
		name string
		call func() (json.RawMessage, error)
	}{
		{"get", func() (json.RawMessage, error) { return client.Get(ctx, "/dvmdb/adom", nil) }},
		{"add", func() (json.RawMessage, error) { return client.Add(ctx, "/pm/pkg/adom/root", nil) }},
		{"set", func() (json.RawMessage, error) { return client.Set(ctx, "/dvmdb/device/fw-1", nil) }},
		{"update", func() (json.RawMessage, error) { return client.Update(ctx, "/dvmdb/device/fw-1", nil) }},
		{"delete", func() (json.RawMessage, error) { return client.Delete(ctx, "/pm/pkg/adom/root/old", nil) }},
		{"exec", func() (json.RawMessage, error) { return client.Exec(ctx, "/sys/logout", nil) }},
	}

	for _, c := range calls {
		fake.queue(okResponse(nil))
		_, err := c.call()
		require.NoError(t, err, c.name)

		sent := fake.requests[len(fake.requests)-1]
		assert.Equal(t, c.name, sent.Method)
		assert.Equal(t, "token", sent.Session)
		require.Len(t, sent.Params, 1)
		assert.NotEmpty(t, sent.Params[0]["url"])
	}

	// Request IDs must keep increasing.
	for i := 1; i < len(fake.requests); i++ {
		assert.Greater(t, fake.requests[i].ID, fake.requests[i-1].ID)
	}
}

func TestWritePayloadsAreDataWrapped(t *testing.T) {
	fake := newFakeFMG(t)
	client := connectedClient(t, fake)
	ctx := context.Background()

	fake.queue(okResponse(map[string]any{"name": "web-1"}))
	_, err := client.CreateAddress(ctx, "root", map[string]any{"name": "web-1", "type": "ipmask"})
	require.NoError(t, err)

	fake.queue(okResponse(nil))
	_, err = client.UpdateAddress(ctx, "root", "web-1", map[string]any{"comment": "updated"})
	require.NoError(t, err)

	fake.queue(okResponse(map[string]any{"task": 7}))
	_, err = client.InstallPackage(ctx, "root", "default", []Scope{{Name: "fw-1", VDOM: "root"}}, nil)
	require.NoError(t, err)

	require.Len(t, fake.requests, 3)
	for _, req := range fake.requests {
		require.Len(t, req.Params, 1)
		data, ok := req.Params[0]["data"].(map[string]any)
		require.True(t, ok, "%s %s must carry a data member", req.Method, paramURL(req))
		assert.NotEmpty(t, data)
	}

	create := fake.requests[0].Params[0]["data"].(map[string]any)
	assert.Equal(t, "web-1", create["name"])

	install := fake.requests[2].Params[0]["data"].(map[string]any)
	assert.Equal(t, "default", install["pkg"])
}

func TestStatusCodeMapping(t *testing.T) {
	fake := newFakeFMG(t)
	client := connectedClient(t, fake)

	fake.queue(errResponse(-4, "Object does not exist"))
	_, err := client.Get(context.Background(), "/pm/config/adom/root/obj/firewall/address/missing", nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	fake.queue(errResponse(-6, "Datasrc duplicate"))
	_, err = client.Add(context.Background(), "/pm/config/adom/root/obj/firewall/address", nil)
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
}

func TestGetTaskFetchesByID(t *testing.T) {
	fake := newFakeFMG(t)
	client := connectedClient(t, fake)

	fake.queue(okResponse(map[string]any{"id": 42, "state": "running", "percent": 30}))
	payload, err := client.GetTask(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	assert.Equal(t, "get", fake.requests[0].Method)
	assert.Equal(t, "/task/task/42", paramURL(fake.requests[0]))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "running", decoded["state"])
}

func TestCloseLogsOutWithCredentials(t *testing.T) {
	fake := newFakeFMG(t)
	fake.queue(map[string]any{
		"id":      1,
		"session": "session-abc",
		"result": []map[string]any{{
			"status": map[string]any{"code": 0, "message": "OK"},
		}},
	})
	client := fake.client(t, func(c *config.Config) {
		c.Username = "admin"
		c.Password = "secret"
	})
	require.NoError(t, client.Connect(context.Background()))

	fake.queue(okResponse(nil))
	client.Close(context.Background())

	assert.False(t, client.IsConnected())
	last := fake.requests[len(fake.requests)-1]
	assert.Equal(t, "exec", last.Method)
	assert.Equal(t, "/sys/logout", paramURL(last))
}

func TestCloseWithTokenSkipsLogout(t *testing.T) {
	fake := newFakeFMG(t)
	client := connectedClient(t, fake)

	client.Close(context.Background())
	assert.False(t, client.IsConnected())
	assert.Empty(t, fake.requests, "token sessions have nothing to log out")
}

func TestDecodeListNormalizesPayloads(t *testing.T) {
	list, err := decodeList(json.RawMessage(`[{"name":"a"},{"name":"b"}]`))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0]["name"])

	single, err := decodeList(json.RawMessage(`{"name":"only"}`))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "only", single[0]["name"])

	empty, err := decodeList(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, empty)

	none, err := decodeList(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}
