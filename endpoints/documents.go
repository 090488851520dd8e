package endpoints

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/koywe/dispatch"
	"github.com/dmitrijs2005/koywe/models"
)

// Paging defaults for List.
const (
	DefaultPage  = 1
	DefaultLimit = 10

	// DefaultTaxRate applies to invoices when neither the client nor the
	// request sets one.
	DefaultTaxRate = 0.10

	defaultInvoiceRef = 1
)

// ListOptions selects a page of documents. Zero Page and Limit take the
// defaults. Filters are sent as additional query parameters and may not
// override page or limit.
type ListOptions struct {
	Page    int
	Limit   int
	Filters map[string]string
}

// CreateOptions tunes document creation. A nil GenerateStamp omits the
// generate_stamp parameter.
type CreateOptions struct {
	GenerateStamp *int
}

// InvoiceRequest describes a standard invoice built by CreateInvoice.
//
// Issuer and Receiver are merged into the document header in that order, after
// the type, date, currency and account fields. AdditionalOptions are merged
// into the top level of the document last. Zero ids default to 1 and a nil
// TaxRate uses the rate Documents was built with.
type InvoiceRequest struct {
	Issuer            map[string]any
	Receiver          map[string]any
	LineItems         []models.DocumentDetail
	CurrencyID        int64
	DocumentTypeID    int64
	AccountID         int64
	TaxRate           *float64
	AdditionalOptions map[string]any
}

// Documents is the /documents resource.
type Documents struct {
	exec    Executor
	taxRate float64
	now     func() time.Time
}

// NewDocuments returns the documents resource. A negative taxRate is
// replaced with DefaultTaxRate.
func NewDocuments(exec Executor, taxRate float64) *Documents {
	if taxRate < 0 {
		taxRate = DefaultTaxRate
	}
	return &Documents{exec: exec, taxRate: taxRate, now: time.Now}
}

// TaxRate returns the rate applied to invoices that do not set their own.
func (d *Documents) TaxRate() float64 {
	return d.taxRate
}

// List fetches one page of documents.
func (d *Documents) List(ctx context.Context, opts ListOptions) (*models.DocumentList, error) {
	page, limit := opts.Page, opts.Limit
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := url.Values{}
	for k, v := range opts.Filters {
		q.Set(k, v)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	p, err := d.exec.Execute(ctx, dispatch.Request{Method: http.MethodGet, Path: "documents", Query: q})
	if err != nil {
		return nil, err
	}
	return decode[models.DocumentList](p, "list documents")
}

// Get fetches a document by id.
func (d *Documents) Get(ctx context.Context, id models.ID) (*models.Document, error) {
	path, err := resourcePath("documents", id)
	if err != nil {
		return nil, err
	}
	p, err := d.exec.Execute(ctx, dispatch.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	return decode[models.Document](p, "get document")
}

// Create posts a new document. body is any JSON-encodable value, typically a
// models.Document or a map.
func (d *Documents) Create(ctx context.Context, body any, opts CreateOptions) (*models.Document, error) {
	r := dispatch.Request{Method: http.MethodPost, Path: "documents", Body: body}
	if opts.GenerateStamp != nil {
		r.Query = url.Values{"generate_stamp": {strconv.Itoa(*opts.GenerateStamp)}}
	}

	p, err := d.exec.Execute(ctx, r)
	if err != nil {
		return nil, err
	}
	return decode[models.Document](p, "create document")
}

// Update replaces a document with body.
func (d *Documents) Update(ctx context.Context, id models.ID, body any) (*models.Document, error) {
	path, err := resourcePath("documents", id)
	if err != nil {
		return nil, err
	}
	p, err := d.exec.Execute(ctx, dispatch.Request{Method: http.MethodPut, Path: path, Body: body})
	if err != nil {
		return nil, err
	}
	return decode[models.Document](p, "update document")
}

// Delete removes a document and returns the server's confirmation body.
func (d *Documents) Delete(ctx context.Context, id models.ID) (dispatch.Payload, error) {
	path, err := resourcePath("documents", id)
	if err != nil {
		return nil, err
	}
	return d.exec.Execute(ctx, dispatch.Request{Method: http.MethodDelete, Path: path})
}

// CreateInvoice computes totals for the line items and creates the invoice.
func (d *Documents) CreateInvoice(ctx context.Context, req InvoiceRequest) (*models.Document, error) {
	return d.Create(ctx, d.invoiceBody(req), CreateOptions{})
}

func (d *Documents) invoiceBody(req InvoiceRequest) map[string]any {
	rate := d.taxRate
	if req.TaxRate != nil {
		rate = *req.TaxRate
	}

	var subtotal float64
	for _, item := range req.LineItems {
		subtotal += item.Total
	}
	tax := subtotal * rate

	header := map[string]any{
		"document_type_id": orDefault(req.DocumentTypeID),
		"issue_date":       models.NewDate(d.now()),
		"currency_id":      orDefault(req.CurrencyID),
		"account_id":       orDefault(req.AccountID),
	}
	for k, v := range req.Issuer {
		header[k] = v
	}
	for k, v := range req.Receiver {
		header[k] = v
	}

	details := req.LineItems
	if details == nil {
		details = []models.DocumentDetail{}
	}

	body := map[string]any{
		"header":  header,
		"details": details,
		"totals": models.Totals{
			Subtotal: subtotal,
			Tax:      tax,
			Total:    subtotal + tax,
		},
	}
	for k, v := range req.AdditionalOptions {
		body[k] = v
	}
	return body
}

func orDefault(id int64) int64 {
	if id == 0 {
		return defaultInvoiceRef
	}
	return id
}
