package quoting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bluerhyno/internal/bootstrap/logging"
	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/errs"
	"bluerhyno/internal/observability/metrics"
	"bluerhyno/internal/ports"
)

type CustomerInput struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string
	Address1  string `validate:"required"`
	Address2  string
	City      string `validate:"required"`
	State     string `validate:"required"`
	ZipCode   string `validate:"required"`
}

type QuoteInput struct {
	MaterialType string  `validate:"required"`
	FenceLength  float64 `validate:"required,gt=0"`
	HOAApproval  string
	CityApproval string
}

type CreateQuoteInput struct {
	Customer  CustomerInput
	Quote     QuoteInput
	PhotoRefs []string
}

type CreateQuoteResult struct {
	QuoteID         uint64
	CustomerID      uint64
	ReferenceNumber string
}

// CreateQuote upserts the customer by email, inserts the quote, and assigns
// its reference number, all in one transaction. The reference number is
// re-read before commit; an unset value is a consistency failure and rolls
// the whole creation back. Confirmation email happens after commit and is
// never allowed to fail the operation.
func (s *Service) CreateQuote(ctx context.Context, input CreateQuoteInput) (result CreateQuoteResult, err error) {
	start := time.Now()
	defer func() { metrics.ObserveEngineOperation("create_quote", err, time.Since(start)) }()

	if ctx == nil {
		return CreateQuoteResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return CreateQuoteResult{}, errs.Wrap(err, "check context")
	}
	if err := s.guard(); err != nil {
		return CreateQuoteResult{}, err
	}
	if err := s.validate.Struct(input); err != nil {
		return CreateQuoteResult{}, validationErr(err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Customer.Email))

	var customer ports.Customer
	var quote ports.Quote
	txErr := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		customer, err = s.upsertCustomer(txCtx, email, input.Customer)
		if err != nil {
			return err
		}

		quote, err = s.repo.CreateQuote(txCtx, ports.Quote{
			CustomerID:   customer.CustomerID,
			QuoteDate:    s.today(),
			Status:       string(domain.StatusPending),
			MaterialType: input.Quote.MaterialType,
			FenceLength:  input.Quote.FenceLength,
			HOAApproval:  input.Quote.HOAApproval,
			CityApproval: input.Quote.CityApproval,
			PhotoPaths:   input.PhotoRefs,
			Address:      strings.TrimSpace(input.Customer.Address1),
			Address2:     strings.TrimSpace(input.Customer.Address2),
		})
		if err != nil {
			return err
		}

		ref := domain.FormatReferenceNumber(s.now().UTC().Year(), quote.QuoteID)
		if err := s.repo.SetQuoteReferenceNumber(txCtx, quote.QuoteID, ref); err != nil {
			return err
		}

		// Deliberate verification step: the id-derived reference must be on
		// the row before the creation is reported successful.
		quote, err = s.repo.GetQuote(txCtx, quote.QuoteID)
		if err != nil {
			return err
		}
		if quote.ReferenceNumber == "" {
			return fmt.Errorf("%w: reference number missing after write on quote %d",
				domain.ErrConsistency, quote.QuoteID)
		}
		return nil
	})
	if txErr != nil {
		return CreateQuoteResult{}, execErr(txErr)
	}

	s.sendQuoteConfirmation(ctx, customer, quote)

	return CreateQuoteResult{
		QuoteID:         quote.QuoteID,
		CustomerID:      customer.CustomerID,
		ReferenceNumber: quote.ReferenceNumber,
	}, nil
}

// upsertCustomer keeps customer email unique: re-submission with a known
// email updates that customer instead of inserting a duplicate.
func (s *Service) upsertCustomer(ctx context.Context, email string, input CustomerInput) (ports.Customer, error) {
	address := strings.TrimSpace(input.Address1)
	if a2 := strings.TrimSpace(input.Address2); a2 != "" {
		address += " " + a2
	}

	existing, err := s.repo.GetCustomerByEmail(ctx, email)
	switch {
	case err == nil:
		existing.FirstName = input.FirstName
		existing.LastName = input.LastName
		existing.PhoneNumber = input.Phone
		existing.Address = address
		existing.City = input.City
		existing.State = input.State
		existing.ZipCode = input.ZipCode
		if err := s.repo.UpdateCustomer(ctx, existing); err != nil {
			return ports.Customer{}, err
		}
		return existing, nil
	case errors.Is(err, ports.ErrCustomerNotFound):
		return s.repo.CreateCustomer(ctx, ports.Customer{
			Email:       email,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			PhoneNumber: input.Phone,
			Address:     address,
			City:        input.City,
			State:       input.State,
			ZipCode:     input.ZipCode,
		})
	default:
		return ports.Customer{}, err
	}
}

func (s *Service) sendQuoteConfirmation(ctx context.Context, customer ports.Customer, quote ports.Quote) {
	if s.notifier == nil {
		return
	}
	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "quoting.service"),
		slog.Uint64("quote_id", quote.QuoteID),
	)

	err := s.notifier.Send(ctx, confirmationEmail(customer, quote))
	metrics.ObserveNotification("quote_confirmation", err)
	if err != nil {
		logging.Warn(logCtx, "quote confirmation email failed", slog.Any("err", errs.Loggable(err)))
		return
	}

	if s.businessEmail != "" {
		bizErr := s.notifier.Send(ctx, businessCopyEmail(s.businessEmail, customer, quote))
		metrics.ObserveNotification("business_copy", bizErr)
		if bizErr != nil {
			logging.Warn(logCtx, "business copy email failed", slog.Any("err", errs.Loggable(bizErr)))
		}
	}

	// The flag mirrors delivery of the customer mail; losing this write only
	// costs a duplicate email, never the quote.
	if err := s.repo.MarkQuoteEmailSent(ctx, quote.QuoteID); err != nil {
		logging.Warn(logCtx, "mark email sent failed", slog.Any("err", errs.Loggable(err)))
	}
}
