package quoting

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/ports"
)

// Service is the quoting workflow engine: quote intake, lifecycle
// transitions, cascade deletes, and the customer-facing status lookup. Every
// mutating operation runs as exactly one unit of work; the only suspension
// points are the repository and the notifier.
type Service struct {
	repo          ports.QuotingRepository
	uow           ports.UnitOfWork
	notifier      ports.Notifier
	validate      *validator.Validate
	businessEmail string
	now           func() time.Time
}

// Options carries the non-collaborator knobs of the engine.
type Options struct {
	// BusinessEmail receives the internal copy of every new quote request.
	// Empty disables the business copy.
	BusinessEmail string
}

func NewService(repo ports.QuotingRepository, uow ports.UnitOfWork, notifier ports.Notifier, opts Options) *Service {
	return &Service{
		repo:          repo,
		uow:           uow,
		notifier:      notifier,
		validate:      validator.New(),
		businessEmail: opts.BusinessEmail,
		now:           time.Now,
	}
}

func (s *Service) guard() error {
	if s.repo == nil {
		return errors.New("quoting repository is required")
	}
	if s.uow == nil {
		return errors.New("quoting unit of work is required")
	}
	return nil
}

// today formats the quote date the way the existing rows store it.
func (s *Service) today() string {
	return s.now().UTC().Format("2006-01-02")
}

// validationErr folds validator (or any input) failures into the
// ErrValidation kind without attempting a mutation.
func validationErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, err)
}

// execErr classifies a storage failure as ErrExecution unless the error
// already carries one of the engine kinds.
func execErr(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{
		domain.ErrValidation, domain.ErrNotFound, domain.ErrInvalidTransition,
		domain.ErrConsistency, domain.ErrExecution,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrExecution, err)
}

func notFoundErr(what string, id uint64) error {
	return fmt.Errorf("%w: %s %d", domain.ErrNotFound, what, id)
}
