package quoting

import (
	"context"
	"errors"
	"testing"

	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/ports"
)

func TestLookupJobStatus(t *testing.T) {
	fx := setupService(t)
	ctx := context.Background()

	result, err := fx.svc.CreateQuote(ctx, validCreateInput("lookup@example.com"))
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}
	if _, err := fx.svc.TransitionQuote(ctx, TransitionQuoteInput{
		QuoteID:          result.QuoteID,
		Event:            string(domain.EventApprove),
		ProjectStartDate: "2026-09-01",
		ProjectEndDate:   "2026-09-20",
	}); err != nil {
		t.Fatalf("TransitionQuote() error = %v", err)
	}
	invoice, err := fx.repo.CreateInvoice(ctx, ports.Invoice{QuoteID: result.QuoteID, InvoiceDate: "2026-09-01", Amount: 6000})
	if err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	if _, err := fx.repo.CreatePayment(ctx, ports.Payment{InvoiceID: invoice.InvoiceID, PaymentDate: "2026-09-03", Amount: 1500}); err != nil {
		t.Fatalf("CreatePayment() error = %v", err)
	}

	view, err := fx.svc.LookupJobStatus(ctx, result.ReferenceNumber, "lookup@example.com")
	if err != nil {
		t.Fatalf("LookupJobStatus() error = %v", err)
	}
	if view.ReferenceNumber != result.ReferenceNumber {
		t.Fatalf("LookupJobStatus() reference_number = %q", view.ReferenceNumber)
	}
	if view.QuoteStatus != string(domain.StatusInProgress) {
		t.Fatalf("LookupJobStatus() quote_status = %q", view.QuoteStatus)
	}
	if view.ProjectStartDate != "2026-09-01" {
		t.Fatalf("LookupJobStatus() project_start_date = %q", view.ProjectStartDate)
	}
	if view.AmountPaid != 1500 {
		t.Fatalf("LookupJobStatus() amount_paid = %v", view.AmountPaid)
	}
}

func TestLookupJobStatusNormalizesEmail(t *testing.T) {
	fx := setupService(t)
	ctx := context.Background()

	result, err := fx.svc.CreateQuote(ctx, validCreateInput("mixed@example.com"))
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}

	if _, err := fx.svc.LookupJobStatus(ctx, "  "+result.ReferenceNumber+"  ", "Mixed@Example.COM"); err != nil {
		t.Fatalf("LookupJobStatus() error = %v", err)
	}
}

func TestLookupJobStatusMalformedReference(t *testing.T) {
	fx := setupService(t)

	cases := []string{"", "20260001", "QT-abc", "QT-123"}
	for _, ref := range cases {
		if _, err := fx.svc.LookupJobStatus(context.Background(), ref, "any@example.com"); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("LookupJobStatus(%q) error = %v, want ErrValidation", ref, err)
		}
	}
}

func TestLookupJobStatusWrongEmail(t *testing.T) {
	fx := setupService(t)
	ctx := context.Background()

	result, err := fx.svc.CreateQuote(ctx, validCreateInput("owner@example.com"))
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}

	if _, err := fx.svc.LookupJobStatus(ctx, result.ReferenceNumber, "intruder@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("LookupJobStatus() error = %v, want ErrNotFound", err)
	}
}
