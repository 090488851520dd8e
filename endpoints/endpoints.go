// Package endpoints wraps the Koywe resources in typed calls over a request
// executor.
package endpoints

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/koywe/apierr"
	"github.com/dmitrijs2005/koywe/dispatch"
	"github.com/dmitrijs2005/koywe/models"
)

// Executor sends one API request. *dispatch.Dispatcher implements it.
type Executor interface {
	Execute(ctx context.Context, r dispatch.Request) (dispatch.Payload, error)
}

// resourcePath joins a collection and an escaped id. An empty id is rejected
// before any request is made.
func resourcePath(collection string, id models.ID) (string, error) {
	s := strings.TrimSpace(id.String())
	if s == "" {
		return "", apierr.New(apierr.KindValidation, collection+": id is required", 0, nil)
	}
	return collection + "/" + url.PathEscape(s), nil
}

func decode[T any](p dispatch.Payload, what string) (*T, error) {
	var out T
	if err := p.Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return &out, nil
}
