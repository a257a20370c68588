package ports

import (
	"context"
	"errors"

	"bluerhyno/internal/domain/quoting"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrJobStatusNotFound = errors.New("no job matches reference number and email")
)

type Customer struct {
	CustomerID  uint64
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	City        string
	State       string
	ZipCode     string
}

type Quote struct {
	QuoteID         uint64
	CustomerID      uint64
	QuoteDate       string
	Status          string
	MaterialType    string
	FenceLength     float64
	HOAApproval     string
	CityApproval    string
	PhotoPaths      []string
	Address         string
	Address2        string
	ReferenceNumber string
	RejectionReason string
	EmailSent       bool
	TotalAmount     *float64
}

type Project struct {
	ProjectID        uint64
	QuoteID          uint64
	ProjectStartDate string
	ProjectEndDate   string
	Status           string
}

type Invoice struct {
	InvoiceID   uint64
	QuoteID     uint64
	InvoiceDate string
	Amount      float64
}

type Payment struct {
	PaymentID   uint64
	InvoiceID   uint64
	PaymentDate string
	Amount      float64
}

type Feedback struct {
	FeedbackID uint64
	CustomerID uint64
	Rating     int
	Comments   string
}

// JobStatus is the read-only join a customer sees when polling by reference
// number and email.
type JobStatus struct {
	ReferenceNumber  string
	Email            string
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

// QuotingRepository is the persistence gateway for the quoting engine. Every
// method participates in an ambient transaction when the context carries one.
type QuotingRepository interface {
	GetCustomer(ctx context.Context, customerID uint64) (Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	CreateCustomer(ctx context.Context, customer Customer) (Customer, error)
	UpdateCustomer(ctx context.Context, customer Customer) error

	GetQuote(ctx context.Context, quoteID uint64) (Quote, error)
	ListQuotes(ctx context.Context) ([]Quote, error)
	CreateQuote(ctx context.Context, quote Quote) (Quote, error)
	SetQuoteReferenceNumber(ctx context.Context, quoteID uint64, referenceNumber string) error
	SetQuoteStatus(ctx context.Context, quoteID uint64, status string) error
	SetQuoteRejection(ctx context.Context, quoteID uint64, status string, reason string) error
	SetQuoteTotalAmount(ctx context.Context, quoteID uint64, totalAmount float64) error
	MarkQuoteEmailSent(ctx context.Context, quoteID uint64) error

	GetProject(ctx context.Context, projectID uint64) (Project, error)
	GetProjectByQuote(ctx context.Context, quoteID uint64) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	CreateProject(ctx context.Context, project Project) (Project, error)
	UpdateProject(ctx context.Context, project Project) error

	CreateInvoice(ctx context.Context, invoice Invoice) (Invoice, error)
	CreatePayment(ctx context.Context, payment Payment) (Payment, error)
	CreateFeedback(ctx context.Context, feedback Feedback) (Feedback, error)
	SetCustomerPassword(ctx context.Context, customerID uint64, passwordHash string) error

	// ApplyDelete executes one cascade step scoped to rootID and reports the
	// number of rows removed.
	ApplyDelete(ctx context.Context, rootID uint64, step quoting.DeleteStep) (int64, error)

	GetJobStatus(ctx context.Context, referenceNumber string, email string) (JobStatus, error)
}
