package koywe

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/koywe/apierr"
	"github.com/dmitrijs2005/koywe/auth"
	"github.com/dmitrijs2005/koywe/dispatch"
	"github.com/dmitrijs2005/koywe/endpoints"
)

type fakeAPI struct {
	*httptest.Server
	grants    atomic.Int32
	documents atomic.Int32
	reject    atomic.Bool
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /V1/auth", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error": "invalid_grant"}`)
			return
		}
		n := api.grants.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-" + string(rune('0'+n)),
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /V1/documents", func(w http.ResponseWriter, r *http.Request) {
		api.documents.Add(1)
		if api.reject.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"data": [{"document_id": 1}, {"document_id": 2}], "total": 2}`)
	})
	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) config() Config {
	return Config{
		ClientID:     "id",
		ClientSecret: "cs",
		Username:     "user",
		Password:     "secret",
		BaseURL:      a.URL + "/V1/",
	}
}

func TestNew_ValidatesCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{ClientID: "id", Username: "u"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrMissingCredentials))
	assert.Contains(t, err.Error(), "client_secret")
	assert.Contains(t, err.Error(), "password")
}

func TestNew_DefaultsBaseURL(t *testing.T) {
	c, err := New(context.Background(), Config{ClientID: "a", ClientSecret: "b", Username: "c", Password: "d"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, endpoints.DefaultTaxRate, c.Documents().TaxRate())
}

func TestNew_AutoAuthenticate(t *testing.T) {
	api := newFakeAPI(t)
	cfg := api.config()
	cfg.AutoAuthenticate = true

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, "token-1", c.Session().AccessToken)
	assert.Equal(t, int32(1), api.grants.Load())
	assert.Equal(t, api.URL+"/V1", c.BaseURL())
}

func TestNew_AutoAuthenticateFailure(t *testing.T) {
	api := newFakeAPI(t)
	cfg := api.config()
	cfg.Password = "wrong"
	cfg.AutoAuthenticate = true

	c, err := New(context.Background(), cfg)
	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))

	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid_grant", apiErr.Body["error"])
}

func TestClient_LazyAuthenticationAndClear(t *testing.T) {
	api := newFakeAPI(t)
	c, err := New(context.Background(), api.config())
	require.NoError(t, err)
	assert.Zero(t, api.grants.Load())

	list, err := c.Documents().List(context.Background(), endpoints.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, int32(1), api.grants.Load())

	_, err = c.Documents().List(context.Background(), endpoints.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.grants.Load(), "valid token is reused")

	c.ClearAuthentication()
	assert.False(t, c.IsAuthenticated())

	_, err = c.Documents().List(context.Background(), endpoints.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.grants.Load())
}

func TestClient_UnauthorizedResponseDropsSession(t *testing.T) {
	api := newFakeAPI(t)
	cfg := api.config()
	cfg.AutoAuthenticate = true
	c, err := New(context.Background(), cfg)
	require.NoError(t, err)

	api.reject.Store(true)
	_, err = c.Execute(context.Background(), dispatch.Request{Method: http.MethodGet, Path: "documents"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))
	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, int32(1), api.documents.Load(), "no retry after 401")

	api.reject.Store(false)
	_, err = c.Execute(context.Background(), dispatch.Request{Method: http.MethodGet, Path: "documents"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.grants.Load())
}

func TestClient_Refresh(t *testing.T) {
	api := newFakeAPI(t)
	c, err := New(context.Background(), api.config())
	require.NoError(t, err)

	require.NoError(t, c.Refresh(context.Background()))
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, int32(1), api.grants.Load())
}

func TestClient_Metrics(t *testing.T) {
	api := newFakeAPI(t)
	reg := prometheus.NewRegistry()
	cfg := api.config()
	cfg.Registerer = reg

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)

	_, err = c.Documents().List(context.Background(), endpoints.ListOptions{})
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "koywe_client_requests_total", "koywe_client_token_grants_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = New(context.Background(), cfg)
	assert.Error(t, err, "collectors cannot be registered twice")
}

func TestConfigFromEnv(t *testing.T) {
	env := map[string]string{
		EnvClientID:     "id",
		EnvClientSecret: "cs",
		EnvUsername:     "user",
		EnvPassword:     "pw",
	}
	getenv := func(k string) string { return env[k] }

	cfg, err := configFromEnv(getenv)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "pw", cfg.Password)

	env[EnvBaseURL] = "https://sandbox.test/V1"
	cfg, err = configFromEnv(getenv)
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.test/V1", cfg.BaseURL)

	delete(env, EnvUsername)
	delete(env, EnvPassword)
	_, err = configFromEnv(getenv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingEnvironment))
	assert.Contains(t, err.Error(), "KOYWE_USERNAME, KOYWE_PASSWORD")
}

func TestFromEnvironment(t *testing.T) {
	api := newFakeAPI(t)
	t.Setenv(EnvClientID, "id")
	t.Setenv(EnvClientSecret, "cs")
	t.Setenv(EnvUsername, "user")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvBaseURL, api.URL+"/V1")

	c, err := FromEnvironment(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, c.IsAuthenticated())

	t.Setenv(EnvPassword, "")
	_, err = FromEnvironment(context.Background(), false)
	assert.True(t, errors.Is(err, ErrMissingEnvironment))
}
