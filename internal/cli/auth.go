package cli

import (
	"context"
	"fmt"
	"time"
)

func (a *App) Login(ctx context.Context) error {
	if err := a.client.Authenticate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.ClearAuthentication()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Status prints the session state. For JWT access tokens the subject and
// server-side expiry are shown as well.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintf(a.out, "API:      %s\n", a.client.BaseURL())
	fmt.Fprintf(a.out, "User:     %s\n", a.config.Username)

	s := a.client.Session()
	if !a.client.IsAuthenticated() {
		fmt.Fprintln(a.out, "Session:  not authenticated")
		return nil
	}

	fmt.Fprintf(a.out, "Session:  %s token, valid until %s\n", s.TokenType, s.ExpiresAt.Format(time.RFC3339))
	if s.RefreshToken != "" {
		fmt.Fprintln(a.out, "Refresh:  available")
	}
	if claims, ok := s.Claims(); ok {
		if claims.Subject != "" {
			fmt.Fprintf(a.out, "Subject:  %s\n", claims.Subject)
		}
		if claims.ExpiresAt != nil {
			fmt.Fprintf(a.out, "Expires:  %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
		}
	}
	return nil
}
