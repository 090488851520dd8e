package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/koywe/apierr"
	"github.com/dmitrijs2005/koywe/logging"
	"github.com/dmitrijs2005/koywe/metrics"
)

// DefaultTimeout bounds a single call to the auth endpoint when Config
// carries no HTTP client.
const DefaultTimeout = 30 * time.Second

const grantFlight = "token"

// Config configures a Manager. Only Credentials is required.
type Config struct {
	Credentials Credentials
	HTTPClient  *http.Client
	Now         func() time.Time
	Logger      logging.Logger
	Metrics     *metrics.Collectors

	// OnRefreshFailure receives the refresh-grant error that Refresh discards
	// before falling back to a password grant.
	OnRefreshFailure func(error)
}

// Manager owns the Session of one client. See the package documentation for
// the grant and concurrency contract.
type Manager struct {
	creds            Credentials
	httpClient       *http.Client
	now              func() time.Time
	log              logging.Logger
	metrics          *metrics.Collectors
	onRefreshFailure func(error)

	mu      sync.RWMutex
	session Session

	flight singleflight.Group
}

func NewManager(cfg Config) *Manager {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		creds:            cfg.Credentials.normalized(),
		httpClient:       httpClient,
		now:              now,
		log:              logging.OrNop(cfg.Logger).With("component", "auth"),
		metrics:          cfg.Metrics,
		onRefreshFailure: cfg.OnRefreshFailure,
	}
}

// Credentials returns the credentials the manager was built with.
func (m *Manager) Credentials() Credentials {
	return m.creds
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// IsValid reports whether an access token is held and has not expired.
func (m *Manager) IsValid() bool {
	return m.Snapshot().ValidAt(m.now())
}

// Authenticate performs a password grant and replaces the session with its
// result.
func (m *Manager) Authenticate(ctx context.Context) error {
	_, err, _ := m.flight.Do(grantFlight, func() (any, error) {
		return m.authenticate(ctx)
	})
	return err
}

// EnsureValidHeaders returns the Authorization header for the current
// session, authenticating first when the session is not valid.
func (m *Manager) EnsureValidHeaders(ctx context.Context) (http.Header, error) {
	if s := m.Snapshot(); s.ValidAt(m.now()) {
		return s.Header(), nil
	}

	v, err, _ := m.flight.Do(grantFlight, func() (any, error) {
		// a grant may have completed between the check above and this flight
		if s := m.Snapshot(); s.ValidAt(m.now()) {
			return s, nil
		}
		return m.authenticate(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(Session).Header(), nil
}

// Refresh exchanges the refresh token for a new session. Without a refresh
// token, or when the refresh grant fails for any reason, it performs a
// password grant instead and returns that grant's error.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.flight.Do(grantFlight, func() (any, error) {
		return m.refresh(ctx)
	})
	return err
}

// Clear drops all token state. It has no network effect.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.session = Session{}
	m.mu.Unlock()
}

func (m *Manager) refresh(ctx context.Context) (Session, error) {
	refreshToken := m.Snapshot().RefreshToken
	if refreshToken == "" {
		return m.authenticate(ctx)
	}

	s, err := m.grant(ctx, metrics.GrantRefreshToken, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
		"client_id":     m.creds.ClientID,
		"client_secret": m.creds.ClientSecret,
	})
	if err == nil {
		m.store(s)
		m.log.Info(ctx, "token refreshed", "token_type", s.TokenType, "expires_at", s.ExpiresAt)
		return s, nil
	}

	// A 200 without a usable access token also lands here and falls back,
	// rather than being returned as an authentication error.
	m.log.Warn(ctx, "token refresh failed, falling back to password grant", "error", err)
	if m.onRefreshFailure != nil {
		m.onRefreshFailure(err)
	}
	return m.authenticate(ctx)
}

func (m *Manager) authenticate(ctx context.Context) (Session, error) {
	s, err := m.grant(ctx, metrics.GrantPassword, map[string]string{
		"grant_type":    "password",
		"client_id":     m.creds.ClientID,
		"client_secret": m.creds.ClientSecret,
		"username":      m.creds.Username,
		"password":      m.creds.Password,
	})
	if err != nil {
		if errors.Is(err, apierr.ErrAuthentication) {
			m.Clear()
		}
		m.log.Error(ctx, "authentication failed", "error", err)
		return Session{}, err
	}

	m.store(s)
	m.log.Info(ctx, "authenticated", "token_type", s.TokenType, "expires_at", s.ExpiresAt)
	return s, nil
}

func (m *Manager) store(s Session) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
}

// grant posts payload to the auth endpoint and parses a successful response
// into a Session. It never touches the stored session.
func (m *Manager) grant(ctx context.Context, grant string, payload map[string]string) (Session, error) {
	s, err := m.doGrant(ctx, grant, payload)
	m.metrics.ObserveGrant(grant, err == nil)
	return s, err
}

func (m *Manager) doGrant(ctx context.Context, grant string, payload map[string]string) (Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Session{}, apierr.Wrap(apierr.KindAuthentication, "failed to encode auth request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.creds.BaseURL+"/auth", bytes.NewReader(body))
	if err != nil {
		return Session{}, networkError(grant, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Session{}, networkError(grant, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Session{}, networkError(grant, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return parseTokenResponse(raw, m.now())
	case http.StatusUnauthorized:
		return Session{}, apierr.New(apierr.KindAuthentication, "invalid credentials provided", resp.StatusCode, apierr.ParseBody(raw))
	default:
		return Session{}, apierr.New(apierr.KindAuthentication,
			fmt.Sprintf("authentication failed with status %d", resp.StatusCode), resp.StatusCode, apierr.ParseBody(raw))
	}
}

func networkError(grant string, err error) error {
	during := "authentication"
	if grant == metrics.GrantRefreshToken {
		during = "token refresh"
	}
	return apierr.Wrap(apierr.KindNetwork, fmt.Sprintf("network error during %s: %v", during, err), err)
}

type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    json.Number `json:"expires_in"`
}

func parseTokenResponse(raw []byte, issuedAt time.Time) (Session, error) {
	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		e := apierr.New(apierr.KindAuthentication, "invalid authentication response", http.StatusOK, apierr.ParseBody(raw))
		e.Err = err
		return Session{}, e
	}
	if tr.AccessToken == "" {
		return Session{}, apierr.New(apierr.KindAuthentication,
			"no access token received from authentication response", http.StatusOK, apierr.ParseBody(raw))
	}

	expiresIn := DefaultExpiresIn
	if tr.ExpiresIn != "" {
		secs, err := tr.ExpiresIn.Float64()
		if err != nil {
			e := apierr.New(apierr.KindAuthentication, "invalid expires_in in authentication response", http.StatusOK, apierr.ParseBody(raw))
			e.Err = err
			return Session{}, e
		}
		expiresIn = time.Duration(secs * float64(time.Second))
	}

	tokenType := tr.TokenType
	if tokenType == "" {
		tokenType = DefaultTokenType
	}

	return Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		TokenType:    tokenType,
		ExpiresAt:    issuedAt.Add(expiresIn - ExpiryMargin),
	}, nil
}
