package quoting

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bluerhyno/internal/bootstrap/logging"
	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/errs"
	"bluerhyno/internal/observability/metrics"
)

// DeleteQuote removes a quote with its project, invoices, and payments as
// one atomic cascade.
func (s *Service) DeleteQuote(ctx context.Context, quoteID uint64) (summary CascadeSummary, err error) {
	start := time.Now()
	defer func() { metrics.ObserveEngineOperation("delete_quote", err, time.Since(start)) }()

	if ctx == nil {
		return CascadeSummary{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return CascadeSummary{}, errs.Wrap(err, "check context")
	}
	if err := s.guard(); err != nil {
		return CascadeSummary{}, err
	}

	plan, err := domain.PlanDeleteQuote(quoteID)
	if err != nil {
		return CascadeSummary{}, err
	}

	summary, err = s.executePlan(ctx, plan)
	if err != nil {
		return CascadeSummary{}, err
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "quoting.service")),
		"quote cascade committed",
		slog.Uint64("quote_id", quoteID),
		slog.Any("rows_deleted", summary.RowsDeleted),
	)
	return summary, nil
}
