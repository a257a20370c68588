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

// DeleteCustomer removes a customer and everything transitively reachable
// from it: feedback, payments, projects, invoices, quotes, passwords, then
// the customer row. All statements commit or roll back as one unit.
func (s *Service) DeleteCustomer(ctx context.Context, customerID uint64) (summary CascadeSummary, err error) {
	start := time.Now()
	defer func() { metrics.ObserveEngineOperation("delete_customer", err, time.Since(start)) }()

	if ctx == nil {
		return CascadeSummary{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return CascadeSummary{}, errs.Wrap(err, "check context")
	}
	if err := s.guard(); err != nil {
		return CascadeSummary{}, err
	}

	plan, err := domain.PlanDeleteCustomer(customerID)
	if err != nil {
		return CascadeSummary{}, err
	}

	summary, err = s.executePlan(ctx, plan)
	if err != nil {
		return CascadeSummary{}, err
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "quoting.service")),
		"customer cascade committed",
		slog.Uint64("customer_id", customerID),
		slog.Any("rows_deleted", summary.RowsDeleted),
	)
	return summary, nil
}
