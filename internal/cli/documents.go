package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/koywe/endpoints"
	"github.com/dmitrijs2005/koywe/models"
)

var errUsage = errors.New("usage")

// Documents lists one page of documents: documents [page] [limit].
func (a *App) Documents(ctx context.Context, args []string) error {
	var opts endpoints.ListOptions
	var err error
	if len(args) > 0 {
		if opts.Page, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("%w: documents [page] [limit]", errUsage)
		}
	}
	if len(args) > 1 {
		if opts.Limit, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("%w: documents [page] [limit]", errUsage)
		}
	}

	list, err := a.client.Documents().List(ctx, opts)
	if err != nil {
		return err
	}
	if len(list.Data) == 0 {
		fmt.Fprintln(a.out, "No documents")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tISSUED\tTOTAL\tELECTRONIC")
	for i := range list.Data {
		d := &list.Data[i]
		issued := ""
		if !d.Header.IssueDate.Time.IsZero() {
			issued = d.Header.IssueDate.Format(models.DateLayout)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.2f\t%t\n", d.ID(), d.Header.DocumentTypeID, issued, d.Totals.Total, d.IsElectronic())
	}
	return tw.Flush()
}

// Document prints one document as JSON: document <id>.
func (a *App) Document(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: document <id>", errUsage)
	}
	d, err := a.client.Documents().Get(ctx, models.ID(args[0]))
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(b))
	if d.HasPaymentLink() {
		fmt.Fprintln(a.out, "Payment link:", d.PaymentLink.URL)
	}
	return nil
}

func (a *App) DeleteDocument(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete-document <id>", errUsage)
	}
	if _, err := a.client.Documents().Delete(ctx, models.ID(args[0])); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Document %s deleted\n", args[0])
	return nil
}
