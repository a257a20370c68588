package quoting

import (
	"context"
	"errors"
	"fmt"

	domain "bluerhyno/internal/domain/quoting"
	"bluerhyno/internal/errs"
	"bluerhyno/internal/ports"
)

// Read operations back the staff views. They run outside a unit of work on
// purpose: single statements against the gateway need no transaction.

func (s *Service) GetQuote(ctx context.Context, quoteID uint64) (ports.Quote, error) {
	if ctx == nil {
		return ports.Quote{}, errors.New("context is required")
	}
	if s.repo == nil {
		return ports.Quote{}, errors.New("quoting repository is required")
	}

	quote, err := s.repo.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, ports.ErrQuoteNotFound) {
			return ports.Quote{}, notFoundErr("quote", quoteID)
		}
		return ports.Quote{}, execErr(err)
	}
	return quote, nil
}

func (s *Service) ListQuotes(ctx context.Context) ([]ports.Quote, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if s.repo == nil {
		return nil, errors.New("quoting repository is required")
	}

	quotes, err := s.repo.ListQuotes(ctx)
	if err != nil {
		return nil, execErr(err)
	}
	return quotes, nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID uint64) (ports.Customer, error) {
	if ctx == nil {
		return ports.Customer{}, errors.New("context is required")
	}
	if s.repo == nil {
		return ports.Customer{}, errors.New("quoting repository is required")
	}

	customer, err := s.repo.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, ports.ErrCustomerNotFound) {
			return ports.Customer{}, notFoundErr("customer", customerID)
		}
		return ports.Customer{}, execErr(err)
	}
	return customer, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]ports.Customer, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if s.repo == nil {
		return nil, errors.New("quoting repository is required")
	}

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, execErr(err)
	}
	return customers, nil
}

func (s *Service) GetProject(ctx context.Context, projectID uint64) (ports.Project, error) {
	if ctx == nil {
		return ports.Project{}, errors.New("context is required")
	}
	if s.repo == nil {
		return ports.Project{}, errors.New("quoting repository is required")
	}

	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, ports.ErrProjectNotFound) {
			return ports.Project{}, notFoundErr("project", projectID)
		}
		return ports.Project{}, execErr(err)
	}
	return project, nil
}

func (s *Service) ListProjects(ctx context.Context) ([]ports.Project, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if s.repo == nil {
		return nil, errors.New("quoting repository is required")
	}

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, execErr(err)
	}
	return projects, nil
}

// UpdateQuotePricing sets the priced total for a quote. Status is not
// touched here: lifecycle state belongs to TransitionQuote alone.
func (s *Service) UpdateQuotePricing(ctx context.Context, quoteID uint64, totalAmount float64) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if err := s.guard(); err != nil {
		return err
	}
	if quoteID == 0 {
		return fmt.Errorf("%w: quote id is required", domain.ErrValidation)
	}
	if totalAmount <= 0 {
		return fmt.Errorf("%w: total amount must be positive", domain.ErrValidation)
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.SetQuoteTotalAmount(txCtx, quoteID, totalAmount); err != nil {
			if errors.Is(err, ports.ErrQuoteNotFound) {
				return notFoundErr("quote", quoteID)
			}
			return err
		}
		return nil
	})
	return execErr(err)
}

type UpdateProjectInput struct {
	ProjectID        uint64 `validate:"required"`
	ProjectStartDate string
	ProjectEndDate   string
	Status           string `validate:"required"`
}

// UpdateProject edits schedule dates and the project's own status. The
// owning quote's lifecycle state is untouched; that belongs to
// TransitionQuote alone.
func (s *Service) UpdateProject(ctx context.Context, input UpdateProjectInput) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.validate.Struct(input); err != nil {
		return validationErr(err)
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetProject(txCtx, input.ProjectID)
		if err != nil {
			if errors.Is(err, ports.ErrProjectNotFound) {
				return notFoundErr("project", input.ProjectID)
			}
			return err
		}

		existing.ProjectStartDate = input.ProjectStartDate
		existing.ProjectEndDate = input.ProjectEndDate
		existing.Status = input.Status
		return s.repo.UpdateProject(txCtx, existing)
	})
	return execErr(err)
}

type UpdateCustomerInput struct {
	CustomerID uint64 `validate:"required"`
	FirstName  string `validate:"required"`
	LastName   string `validate:"required"`
	Phone      string
	Address    string
	City       string
	State      string
	ZipCode    string
}

// UpdateCustomer edits contact fields. Email is the upsert key for quote
// intake and stays immutable here.
func (s *Service) UpdateCustomer(ctx context.Context, input UpdateCustomerInput) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if err := s.guard(); err != nil {
		return err
	}
	if err := s.validate.Struct(input); err != nil {
		return validationErr(err)
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetCustomer(txCtx, input.CustomerID)
		if err != nil {
			if errors.Is(err, ports.ErrCustomerNotFound) {
				return notFoundErr("customer", input.CustomerID)
			}
			return err
		}

		existing.FirstName = input.FirstName
		existing.LastName = input.LastName
		existing.PhoneNumber = input.Phone
		existing.Address = input.Address
		existing.City = input.City
		existing.State = input.State
		existing.ZipCode = input.ZipCode
		return s.repo.UpdateCustomer(txCtx, existing)
	})
	return execErr(err)
}
