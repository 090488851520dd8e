package koywe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/koywe/auth"
	"github.com/dmitrijs2005/koywe/dispatch"
	"github.com/dmitrijs2005/koywe/endpoints"
	"github.com/dmitrijs2005/koywe/logging"
	"github.com/dmitrijs2005/koywe/metrics"
)

// DefaultBaseURL is the production API.
const DefaultBaseURL = "https://api-billing.koywe.com/V1"

// DefaultTimeout bounds every HTTP request the client makes.
const DefaultTimeout = 30 * time.Second

// Config configures a Client. The four credential fields are required.
type Config struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string

	// BaseURL defaults to DefaultBaseURL. Trailing slashes are ignored.
	BaseURL string

	// Timeout applies when HTTPClient is nil. Zero means DefaultTimeout.
	Timeout    time.Duration
	HTTPClient *http.Client

	// TaxRate is applied by Documents().CreateInvoice. Nil means
	// endpoints.DefaultTaxRate.
	TaxRate *float64

	Logger logging.Logger

	// Registerer receives the client's Prometheus collectors. Nil disables
	// metrics.
	Registerer prometheus.Registerer

	OnRefreshFailure func(error)

	// AutoAuthenticate makes New authenticate before returning.
	AutoAuthenticate bool
}

// Client is safe for concurrent use.
type Client struct {
	manager    *auth.Manager
	dispatcher *dispatch.Dispatcher
	documents  *endpoints.Documents
	accounts   *endpoints.Accounts
}

// New builds a Client from cfg. When cfg.AutoAuthenticate is set, the first
// password grant happens here and its error is returned.
func New(ctx context.Context, cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	creds := auth.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
		BaseURL:      baseURL,
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var collectors *metrics.Collectors
	if cfg.Registerer != nil {
		var err error
		if collectors, err = metrics.New(cfg.Registerer); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	log := logging.OrNop(cfg.Logger)

	manager := auth.NewManager(auth.Config{
		Credentials:      creds,
		HTTPClient:       httpClient,
		Logger:           log,
		Metrics:          collectors,
		OnRefreshFailure: cfg.OnRefreshFailure,
	})
	dispatcher := dispatch.New(dispatch.Config{
		BaseURL:    baseURL,
		Authorizer: manager,
		HTTPClient: httpClient,
		Logger:     log,
		Metrics:    collectors,
	})

	taxRate := endpoints.DefaultTaxRate
	if cfg.TaxRate != nil {
		taxRate = *cfg.TaxRate
	}

	c := &Client{
		manager:    manager,
		dispatcher: dispatcher,
		documents:  endpoints.NewDocuments(dispatcher, taxRate),
		accounts:   endpoints.NewAccounts(dispatcher),
	}

	if cfg.AutoAuthenticate {
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Authenticate performs a password grant, replacing any current session.
func (c *Client) Authenticate(ctx context.Context) error {
	return c.manager.Authenticate(ctx)
}

// Refresh renews the session with the refresh token, falling back to a
// password grant.
func (c *Client) Refresh(ctx context.Context) error {
	return c.manager.Refresh(ctx)
}

// IsAuthenticated reports whether the client holds an unexpired token.
func (c *Client) IsAuthenticated() bool {
	return c.manager.IsValid()
}

// ClearAuthentication drops the session. The next request authenticates
// again.
func (c *Client) ClearAuthentication() {
	c.manager.Clear()
}

// Session returns a copy of the current token state.
func (c *Client) Session() auth.Session {
	return c.manager.Snapshot()
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.manager.Credentials().BaseURL
}

// Documents returns the documents resource.
func (c *Client) Documents() *endpoints.Documents {
	return c.documents
}

// Accounts returns the accounts resource.
func (c *Client) Accounts() *endpoints.Accounts {
	return c.accounts
}

// Execute sends a raw request for resources the typed endpoints do not
// cover.
func (c *Client) Execute(ctx context.Context, r dispatch.Request) (dispatch.Payload, error) {
	return c.dispatcher.Execute(ctx, r)
}
