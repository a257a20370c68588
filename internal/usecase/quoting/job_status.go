package quoting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/errs"
	"bluerhyno/internal/observability/metrics"
	"bluerhyno/internal/ports"
)

// JobStatusView is what a customer sees when polling a quote by reference
// number and email.
type JobStatusView struct {
	ReferenceNumber  string
	FirstName        string
	QuoteStatus      string
	MaterialType     string
	FenceLength      float64
	QuoteDate        string
	TotalAmount      *float64
	ProjectStatus    string
	ProjectStartDate string
	ProjectEndDate   string
	AmountPaid       float64
}

// LookupJobStatus is read-only; the (referenceNumber, email) pair must match
// a quote and its owning customer or the lookup is not-found. A malformed
// reference never reaches storage.
func (s *Service) LookupJobStatus(ctx context.Context, referenceNumber string, email string) (view JobStatusView, err error) {
	start := time.Now()
	defer func() { metrics.ObserveEngineOperation("lookup_job_status", err, time.Since(start)) }()

	if ctx == nil {
		return JobStatusView{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return JobStatusView{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return JobStatusView{}, errors.New("quoting repository is required")
	}

	ref := strings.TrimSpace(referenceNumber)
	if err := domain.ParseReferenceNumber(ref); err != nil {
		return JobStatusView{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return JobStatusView{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	status, err := s.repo.GetJobStatus(ctx, ref, email)
	if err != nil {
		if errors.Is(err, ports.ErrJobStatusNotFound) {
			return JobStatusView{}, fmt.Errorf("%w: no job for reference %s", domain.ErrNotFound, ref)
		}
		return JobStatusView{}, execErr(err)
	}

	return JobStatusView{
		ReferenceNumber:  status.ReferenceNumber,
		FirstName:        status.FirstName,
		QuoteStatus:      status.QuoteStatus,
		MaterialType:     status.MaterialType,
		FenceLength:      status.FenceLength,
		QuoteDate:        status.QuoteDate,
		TotalAmount:      status.TotalAmount,
		ProjectStatus:    status.ProjectStatus,
		ProjectStartDate: status.ProjectStartDate,
		ProjectEndDate:   status.ProjectEndDate,
		AmountPaid:       status.AmountPaid,
	}, nil
}
