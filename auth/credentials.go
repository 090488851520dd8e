package auth

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials is returned by Credentials.Validate.
var ErrMissingCredentials = errors.New("missing credentials")

// Credentials identify the API client and the end user for the password grant.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	BaseURL      string
}

// Validate reports every empty required field.
func (c Credentials) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
		{"username", c.Username},
		{"password", c.Password},
		{"base_url", c.BaseURL},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

func (c Credentials) normalized() Credentials {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	return c
}

// String hides the secrets so Credentials can be logged.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{client_id=%s username=%s base_url=%s}", c.ClientID, c.Username, c.BaseURL)
}
