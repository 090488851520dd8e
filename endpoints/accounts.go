package endpoints

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/koywe/dispatch"
	"github.com/dmitrijs2005/koywe/models"
)

// BusinessAccount is the input of CreateBusinessAccount. Phone is omitted
// when empty; AdditionalInfo keys are merged last and may override the
// named fields.
type BusinessAccount struct {
	Name           string
	TaxID          string
	Address        string
	City           string
	CountryID      int64
	Email          string
	Phone          string
	AdditionalInfo map[string]any
}

// Accounts is the /accounts resource.
type Accounts struct {
	exec Executor
}

// NewAccounts returns the accounts resource.
func NewAccounts(exec Executor) *Accounts {
	return &Accounts{exec: exec}
}

// Get fetches an account by id.
func (a *Accounts) Get(ctx context.Context, id models.ID) (*models.Account, error) {
	path, err := resourcePath("accounts", id)
	if err != nil {
		return nil, err
	}
	p, err := a.exec.Execute(ctx, dispatch.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	return decode[models.Account](p, "get account")
}

// Create posts a new account. body is any JSON-encodable value.
func (a *Accounts) Create(ctx context.Context, body any) (*models.Account, error) {
	p, err := a.exec.Execute(ctx, dispatch.Request{Method: http.MethodPost, Path: "accounts", Body: body})
	if err != nil {
		return nil, err
	}
	return decode[models.Account](p, "create account")
}

// CreateBusinessAccount creates an account from the business fields of b.
func (a *Accounts) CreateBusinessAccount(ctx context.Context, b BusinessAccount) (*models.Account, error) {
	body := map[string]any{
		"name":       b.Name,
		"tax_id":     b.TaxID,
		"address":    b.Address,
		"city":       b.City,
		"country_id": b.CountryID,
		"email":      b.Email,
	}
	if b.Phone != "" {
		body["phone"] = b.Phone
	}
	for k, v := range b.AdditionalInfo {
		body[k] = v
	}
	return a.Create(ctx, body)
}
