package models

import "encoding/json"

// DocumentDetail is one line item of a document.
type DocumentDetail struct {
	ProductName string  `json:"product_name,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
	Total       float64 `json:"total,omitempty"`
	Description string  `json:"description,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (d *DocumentDetail) UnmarshalJSON(data []byte) error {
	type plain DocumentDetail
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*d = DocumentDetail(p)
	d.Extra = extra
	return nil
}

func (d DocumentDetail) MarshalJSON() ([]byte, error) {
	type plain DocumentDetail
	return encodeWithExtra(plain(d), d.Extra)
}

// DocumentHeader carries the document type, dates and the issuer and
// receiver parties.
type DocumentHeader struct {
	DocumentTypeID int64 `json:"document_type_id,omitempty"`
	IssueDate      Date  `json:"issue_date,omitzero"`
	CurrencyID     int64 `json:"currency_id,omitempty"`
	AccountID      int64 `json:"account_id,omitempty"`

	IssuerAddress  string `json:"issuer_address,omitempty"`
	IssuerCity     string `json:"issuer_city,omitempty"`
	IssuerDistrict string `json:"issuer_district,omitempty"`
	IssuerPhone    string `json:"issuer_phone,omitempty"`
	IssuerActivity string `json:"issuer_activity,omitempty"`

	ReceiverAddress  string `json:"receiver_address,omitempty"`
	ReceiverCity     string `json:"receiver_city,omitempty"`
	ReceiverDistrict string `json:"receiver_district,omitempty"`
	ReceiverPhone    string `json:"receiver_phone,omitempty"`
	ReceiverActivity string `json:"receiver_activity,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (h *DocumentHeader) UnmarshalJSON(data []byte) error {
	type plain DocumentHeader
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*h = DocumentHeader(p)
	h.Extra = extra
	return nil
}

func (h DocumentHeader) MarshalJSON() ([]byte, error) {
	type plain DocumentHeader
	return encodeWithExtra(plain(h), h.Extra)
}

// Totals are the document amounts as computed by the API.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ElectronicDocument references the stamped tax document, when one exists.
type ElectronicDocument struct {
	ID  ID     `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

// PaymentLink is the hosted payment page for a document.
type PaymentLink struct {
	URL string `json:"url,omitempty"`
}

// Document is an invoice or other tax document.
type Document struct {
	DocumentID         ID                  `json:"document_id,omitempty"`
	LegacyID           ID                  `json:"id,omitempty"`
	Header             DocumentHeader      `json:"header"`
	Details            []DocumentDetail    `json:"details,omitempty"`
	Totals             Totals              `json:"totals"`
	ElectronicDocument *ElectronicDocument `json:"electronic_document,omitempty"`
	PaymentLink        *PaymentLink        `json:"payment_link,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// ID returns document_id, or id when the server used the short key.
func (d *Document) ID() ID {
	if d.DocumentID != "" {
		return d.DocumentID
	}
	return d.LegacyID
}

// IsElectronic reports whether the document has been issued electronically.
func (d *Document) IsElectronic() bool {
	return d.ElectronicDocument != nil && d.ElectronicDocument.ID != ""
}

func (d *Document) HasPaymentLink() bool {
	return d.PaymentLink != nil && d.PaymentLink.URL != ""
}

// LineItemsTotal sums the totals of the line items. Items without a total
// count as zero.
func (d *Document) LineItemsTotal() float64 {
	var sum float64
	for _, item := range d.Details {
		sum += item.Total
	}
	return sum
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*d = Document(p)
	d.Extra = extra
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return encodeWithExtra(plain(d), d.Extra)
}

// DocumentList is one page of documents.
type DocumentList struct {
	Data []Document `json:"data"`

	// Extra holds pagination and any other keys returned with the page.
	Extra map[string]json.RawMessage `json:"-"`
}

func (l *DocumentList) UnmarshalJSON(data []byte) error {
	type plain DocumentList
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	*l = DocumentList(p)
	l.Extra = extra
	return nil
}

func (l DocumentList) MarshalJSON() ([]byte, error) {
	type plain DocumentList
	return encodeWithExtra(plain(l), l.Extra)
}
