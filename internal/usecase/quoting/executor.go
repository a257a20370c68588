package quoting

import (
	"context"
	"errors"
	"fmt"

	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/observability/metrics"
	"bluerhyno/internal/ports"
)

// CascadeSummary reports what a committed cascade removed, per table.
type CascadeSummary struct {
	RootTable   string
	RootID      uint64
	RowsDeleted map[string]int64

	order []string
}

// Tables returns the affected table names in deletion order.
func (s CascadeSummary) Tables() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// executePlan applies a cascade plan as one atomic unit: the root is
// re-validated inside the transaction, every step runs in plan order, and
// any failure, including the root delete affecting zero rows, rolls the
// whole unit back.
func (s *Service) executePlan(ctx context.Context, plan domain.CascadePlan) (CascadeSummary, error) {
	summary := CascadeSummary{
		RootTable:   string(plan.RootTable),
		RootID:      plan.RootID,
		RowsDeleted: make(map[string]int64, len(plan.Steps)),
	}

	txErr := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.checkRootExists(txCtx, plan); err != nil {
			return err
		}

		for _, step := range plan.Steps {
			affected, err := s.repo.ApplyDelete(txCtx, plan.RootID, step)
			if err != nil {
				return err
			}
			if step.Root && affected == 0 {
				// The root vanished between the existence check and its
				// delete; treat the plan as not-found and roll back.
				return notFoundErr(string(step.Table), plan.RootID)
			}
			if _, seen := summary.RowsDeleted[string(step.Table)]; !seen {
				summary.order = append(summary.order, string(step.Table))
			}
			summary.RowsDeleted[string(step.Table)] += affected
		}
		return nil
	})
	if txErr != nil {
		return CascadeSummary{}, execErr(txErr)
	}

	for table, rows := range summary.RowsDeleted {
		metrics.ObserveCascadeRows(table, rows)
	}
	return summary, nil
}

// checkRootExists keeps a missing root from mutating anything: it is the
// first statement of the plan's transaction.
func (s *Service) checkRootExists(ctx context.Context, plan domain.CascadePlan) error {
	switch plan.RootTable {
	case domain.TableCustomers:
		if _, err := s.repo.GetCustomer(ctx, plan.RootID); err != nil {
			if errors.Is(err, ports.ErrCustomerNotFound) {
				return notFoundErr("customer", plan.RootID)
			}
			return err
		}
		return nil
	case domain.TableQuotes:
		if _, err := s.repo.GetQuote(ctx, plan.RootID); err != nil {
			if errors.Is(err, ports.ErrQuoteNotFound) {
				return notFoundErr("quote", plan.RootID)
			}
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported cascade root %q", plan.RootTable)
	}
}
