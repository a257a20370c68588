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

type TransitionQuoteInput struct {
	QuoteID uint64
	Event   string
	// Reason is required for reject, ignored otherwise.
	Reason string
	// Optional project dates for approve-and-create-project.
	ProjectStartDate string
	ProjectEndDate   string
}

type TransitionQuoteResult struct {
	NewStatus string
	// ProjectID is set only by approve-and-create-project.
	ProjectID uint64
}

// TransitionQuote drives the lifecycle state machine. The status write and
// its authorized side effect (project creation) commit together or not at
// all; the rejection notification is sent only after the rejection is
// durable and its failure is logged, never escalated.
func (s *Service) TransitionQuote(ctx context.Context, input TransitionQuoteInput) (result TransitionQuoteResult, err error) {
	start := time.Now()
	defer func() { metrics.ObserveEngineOperation("transition_quote", err, time.Since(start)) }()

	if ctx == nil {
		return TransitionQuoteResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return TransitionQuoteResult{}, errs.Wrap(err, "check context")
	}
	if err := s.guard(); err != nil {
		return TransitionQuoteResult{}, err
	}
	if input.QuoteID == 0 {
		return TransitionQuoteResult{}, fmt.Errorf("%w: quote id is required", domain.ErrValidation)
	}

	event, parseErr := domain.ParseEvent(input.Event)
	if parseErr != nil {
		return TransitionQuoteResult{}, fmt.Errorf("%w: %w", domain.ErrInvalidTransition, parseErr)
	}

	reason := strings.TrimSpace(input.Reason)
	if event == domain.EventReject && reason == "" {
		return TransitionQuoteResult{}, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrRejectionReasonRequired)
	}

	var quote ports.Quote
	var customer ports.Customer
	var projectID uint64
	var next domain.Status

	txErr := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		quote, err = s.repo.GetQuote(txCtx, input.QuoteID)
		if err != nil {
			if errors.Is(err, ports.ErrQuoteNotFound) {
				return notFoundErr("quote", input.QuoteID)
			}
			return err
		}

		next, err = domain.NextStatus(domain.Status(quote.Status), event)
		if err != nil {
			return err
		}

		switch event {
		case domain.EventApprove:
			if _, err := s.repo.GetProjectByQuote(txCtx, quote.QuoteID); err == nil {
				return fmt.Errorf("%w: %w", domain.ErrInvalidTransition, domain.ErrProjectAlreadyExists)
			} else if !errors.Is(err, ports.ErrProjectNotFound) {
				return err
			}

			project, err := s.repo.CreateProject(txCtx, ports.Project{
				QuoteID:          quote.QuoteID,
				ProjectStartDate: strings.TrimSpace(input.ProjectStartDate),
				ProjectEndDate:   strings.TrimSpace(input.ProjectEndDate),
				Status:           string(domain.StatusInProgress),
			})
			if err != nil {
				return err
			}
			projectID = project.ProjectID
			return s.repo.SetQuoteStatus(txCtx, quote.QuoteID, string(next))

		case domain.EventReject:
			customer, err = s.repo.GetCustomer(txCtx, quote.CustomerID)
			if err != nil {
				return err
			}
			return s.repo.SetQuoteRejection(txCtx, quote.QuoteID, string(next), reason)

		case domain.EventMarkComplete:
			return s.repo.SetQuoteStatus(txCtx, quote.QuoteID, string(next))

		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownEvent, event)
		}
	})
	if txErr != nil {
		return TransitionQuoteResult{}, execErr(txErr)
	}

	if event == domain.EventReject {
		s.sendRejectionNotice(ctx, customer, quote, reason)
	}

	return TransitionQuoteResult{NewStatus: string(next), ProjectID: projectID}, nil
}

func (s *Service) sendRejectionNotice(ctx context.Context, customer ports.Customer, quote ports.Quote, reason string) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.Send(ctx, rejectionEmail(customer, quote, reason))
	metrics.ObserveNotification("quote_rejection", err)
	if err != nil {
		logging.Warn(
			logging.WithAttrs(ctx,
				slog.String("component", "quoting.service"),
				slog.Uint64("quote_id", quote.QuoteID),
			),
			"rejection email failed", slog.Any("err", errs.Loggable(err)),
		)
	}
}
