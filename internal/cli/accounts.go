package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/koywe/endpoints"
	"github.com/dmitrijs2005/koywe/models"
)

func (a *App) Account(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: account <id>", errUsage)
	}
	acc, err := a.client.Accounts().Get(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}
	a.printAccount(acc)
	return nil
}

// CreateAccount prompts for business details and creates the account.
func (a *App) CreateAccount(ctx context.Context) error {
	var b endpoints.BusinessAccount

	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Business name", &b.Name},
		{"Tax ID", &b.TaxID},
		{"Address", &b.Address},
		{"City", &b.City},
		{"Email", &b.Email},
		{"Phone (optional)", &b.Phone},
	} {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	country, err := GetSimpleText(a.reader, "Country ID", a.out)
	if err != nil {
		return err
	}
	if b.CountryID, err = strconv.ParseInt(country, 10, 64); err != nil {
		return fmt.Errorf("invalid country id %q", country)
	}

	acc, err := a.client.Accounts().CreateBusinessAccount(ctx, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account %s created\n", acc.ID())
	return nil
}

func (a *App) printAccount(acc *models.Account) {
	fmt.Fprintf(a.out, "ID:        %s\n", acc.ID())
	fmt.Fprintf(a.out, "Name:      %s\n", acc.Name)
	fmt.Fprintf(a.out, "Tax ID:    %s\n", acc.TaxID)
	fmt.Fprintf(a.out, "Email:     %s\n", acc.Email)
	if acc.Phone != "" {
		fmt.Fprintf(a.out, "Phone:     %s\n", acc.Phone)
	}
	fmt.Fprintf(a.out, "Address:   %s, %s\n", acc.Address, acc.City)
	fmt.Fprintf(a.out, "Active:    %t\n", acc.IsActive)
	fmt.Fprintf(a.out, "Verified:  %t\n", acc.IsVerified)
}
