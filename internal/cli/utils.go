package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/koywe/apierr"
)

// describe renders err for the terminal. API errors include the response
// body when there is one.
func describe(err error) string {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || len(apiErr.Body) == 0 {
		return err.Error()
	}
	body, jerr := json.Marshal(apiErr.Body)
	if jerr != nil {
		return err.Error()
	}
	return fmt.Sprintf("%s: %s", err.Error(), body)
}
