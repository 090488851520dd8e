package models

import "encoding/json"

// Account is an issuing or receiving party registered with the API.
type Account struct {
	AccountID ID     `json:"account_id,omitempty"`
	LegacyID  ID     `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	CountryID  int64  `json:"country_id,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`

	BusinessType string `json:"business_type,omitempty"`
	Industry     string `json:"industry,omitempty"`

	IsActive   bool `json:"is_active"`
	IsVerified bool `json:"is_verified"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ID returns account_id, or id when the server used the short key.
func (a *Account) ID() ID {
	if a.AccountID != "" {
		return a.AccountID
	}
	return a.LegacyID
}

// UnmarshalJSON decodes an account. An absent is_active means active.
func (a *Account) UnmarshalJSON(data []byte) error {
	type plain Account
	p := plain{IsActive: true}
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*a = Account(p)
	a.Extra = extra
	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	type plain Account
	return encodeWithExtra(plain(a), a.Extra)
}
