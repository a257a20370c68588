package quoting

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/ports"
)

func TestCreateQuote(t *testing.T) {
	fx := setupService(t)
	ctx := context.Background()

	result, err := fx.svc.CreateQuote(ctx, validCreateInput("dana@example.com"))
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}
	if result.QuoteID == 0 || result.CustomerID == 0 {
		t.Fatalf("CreateQuote() result = %+v", result)
	}
	if result.ReferenceNumber != "QT-20260001" {
		t.Fatalf("CreateQuote() reference_number = %q", result.ReferenceNumber)
	}

	quote, err := fx.svc.GetQuote(ctx, result.QuoteID)
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if quote.Status != string(domain.StatusPending) {
		t.Fatalf("GetQuote() status = %q", quote.Status)
	}
	if quote.QuoteDate != "2026-08-29" {
		t.Fatalf("GetQuote() quote_date = %q", quote.QuoteDate)
	}

	// Customer confirmation plus business copy.
	to := fx.notifier.sentTo()
	if len(to) != 2 || to[0] != "dana@example.com" || to[1] != "office@example.com" {
		t.Fatalf("notifier recipients = %v", to)
	}

	// Delivery of the customer mail is recorded on the quote.
	quote, err = fx.svc.GetQuote(ctx, result.QuoteID)
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if !quote.EmailSent {
		t.Fatalf("GetQuote() email_sent = false, want true")
	}
}

func TestCreateQuoteReusesCustomerByEmail(t *testing.T) {
	fx := setupService(t)
	ctx := context.Background()

	first, err := fx.svc.CreateQuote(ctx, validCreateInput("dana@example.com"))
	if err != nil {
		t.Fatalf("CreateQuote() first error = %v", err)
	}

	// Same email resubmitted with a changed phone number.
	input := validCreateInput("Dana@Example.com")
	input.Customer.Phone = "555-0202"
	second, err := fx.svc.CreateQuote(ctx, input)
	if err != nil {
		t.Fatalf("CreateQuote() second error = %v", err)
	}

	if first.CustomerID != second.CustomerID {
		t.Fatalf("CreateQuote() customer ids = %d, %d, want same", first.CustomerID, second.CustomerID)
	}
	if first.ReferenceNumber == second.ReferenceNumber {
		t.Fatalf("CreateQuote() duplicate reference number %q", first.ReferenceNumber)
	}

	customers, err := fx.svc.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("ListCustomers() len = %d, want 1", len(customers))
	}
	if customers[0].PhoneNumber != "555-0202" {
		t.Fatalf("ListCustomers() phone = %q", customers[0].PhoneNumber)
	}
}

func TestCreateQuoteValidation(t *testing.T) {
	fx := setupService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateQuoteInput)
	}{
		{"missing email", func(in *CreateQuoteInput) { in.Customer.Email = "" }},
		{"bad email", func(in *CreateQuoteInput) { in.Customer.Email = "not-an-email" }},
		{"missing material", func(in *CreateQuoteInput) { in.Quote.MaterialType = "" }},
		{"zero fence length", func(in *CreateQuoteInput) { in.Quote.FenceLength = 0 }},
		{"negative fence length", func(in *CreateQuoteInput) { in.Quote.FenceLength = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput("valid@example.com")
			tc.mutate(&input)
			if _, err := fx.svc.CreateQuote(ctx, input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("CreateQuote() error = %v, want ErrValidation", err)
			}
		})
	}

	// Nothing was persisted and nothing was mailed.
	quotes, err := fx.svc.ListQuotes(ctx)
	if err != nil {
		t.Fatalf("ListQuotes() error = %v", err)
	}
	if len(quotes) != 0 {
		t.Fatalf("ListQuotes() len = %d, want 0", len(quotes))
	}
	if got := fx.notifier.sentTo(); len(got) != 0 {
		t.Fatalf("notifier recipients = %v, want none", got)
	}
}

// blankRefRepo drops the reference number from every quote read, simulating
// a write that never landed.
type blankRefRepo struct {
	ports.QuotingRepository
}

func (r *blankRefRepo) GetQuote(ctx context.Context, quoteID uint64) (ports.Quote, error) {
	quote, err := r.QuotingRepository.GetQuote(ctx, quoteID)
	if err != nil {
		return ports.Quote{}, err
	}
	quote.ReferenceNumber = ""
	return quote, nil
}

func TestCreateQuoteRollsBackOnMissingReferenceNumber(t *testing.T) {
	fx := setupService(t)
	ctx := context.Background()

	broken := NewService(
		&blankRefRepo{QuotingRepository: fx.repo},
		fx.uow, fx.notifier, Options{BusinessEmail: "office@example.com"},
	)

	_, err := broken.CreateQuote(ctx, validCreateInput("ghost@example.com"))
	if !errors.Is(err, domain.ErrConsistency) {
		t.Fatalf("CreateQuote() error = %v, want ErrConsistency", err)
	}

	// The whole creation rolled back, customer upsert included.
	quotes, err := fx.svc.ListQuotes(ctx)
	if err != nil {
		t.Fatalf("ListQuotes() error = %v", err)
	}
	if len(quotes) != 0 {
		t.Fatalf("ListQuotes() len = %d, want 0", len(quotes))
	}
	customers, err := fx.svc.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if len(customers) != 0 {
		t.Fatalf("ListCustomers() len = %d, want 0", len(customers))
	}
	if got := fx.notifier.sentTo(); len(got) != 0 {
		t.Fatalf("notifier recipients = %v, want none", got)
	}
}

func TestCreateQuoteSurvivesNotifierFailure(t *testing.T) {
	fx := setupService(t)
	ctx := context.Background()

	fx.notifier.sendErr = errors.New("smtp down")

	result, err := fx.svc.CreateQuote(ctx, validCreateInput("dana@example.com"))
	if err != nil {
		t.Fatalf("CreateQuote() error = %v", err)
	}

	quote, err := fx.svc.GetQuote(ctx, result.QuoteID)
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if !strings.HasPrefix(quote.ReferenceNumber, "QT-") {
		t.Fatalf("GetQuote() reference_number = %q", quote.ReferenceNumber)
	}
	if quote.EmailSent {
		t.Fatalf("GetQuote() email_sent = true, want false after failed delivery")
	}
}
