package quoting

import "fmt"

// Table names the relational tables a cascade can touch. Values are the
// physical table names so execution summaries read the same as the schema.
type Table string

const (
	TableCustomers Table = "Customers"
	TableQuotes    Table = "Quotes"
	TableProjects  Table = "Projects"
	TableInvoices  Table = "Invoice"
	TablePayments  Table = "Payments"
	TableFeedback  Table = "Feedback"
	TablePasswords Table = "Passwords"
)

// Scope selects how a delete step is filtered relative to the cascade root.
type Scope string

const (
	// ScopeByCustomer deletes rows whose CustomerID is the root id.
	ScopeByCustomer Scope = "by-customer"
	// ScopeByCustomerQuotes deletes rows whose QuoteID belongs to any quote
	// owned by the root customer.
	ScopeByCustomerQuotes Scope = "by-customer-quotes"
	// ScopeByCustomerInvoices deletes rows whose InvoiceID belongs to any
	// invoice of any quote owned by the root customer.
	ScopeByCustomerInvoices Scope = "by-customer-invoices"
	// ScopeByQuote deletes rows whose QuoteID is the root id.
	ScopeByQuote Scope = "by-quote"
	// ScopeByQuoteInvoices deletes rows whose InvoiceID belongs to any
	// invoice of the root quote.
	ScopeByQuoteInvoices Scope = "by-quote-invoices"
	// ScopeRoot deletes the root row itself by primary key.
	ScopeRoot Scope = "root"
)

// DeleteStep is one scoped delete statement of a cascade plan. Root marks the
// step whose affected-row count proves the root entity existed; zero rows
// there turns the whole plan into a not-found and rolls it back.
type DeleteStep struct {
	Table Table
	Scope Scope
	Root  bool
}

// CascadePlan is the ordered, side-effect-free output of planning: children
// before parents, executed as a single transaction by the executor.
type CascadePlan struct {
	RootTable Table
	RootID    uint64
	Steps     []DeleteStep
}

// PlanDeleteCustomer produces the canonical customer teardown order:
// Feedback, Payments, Projects, Invoice, Quotes, Passwords, Customer.
func PlanDeleteCustomer(customerID uint64) (CascadePlan, error) {
	if customerID == 0 {
		return CascadePlan{}, fmt.Errorf("%w: customer id is required", ErrValidation)
	}

	return CascadePlan{
		RootTable: TableCustomers,
		RootID:    customerID,
		Steps: []DeleteStep{
			{Table: TableFeedback, Scope: ScopeByCustomer},
			{Table: TablePayments, Scope: ScopeByCustomerInvoices},
			{Table: TableProjects, Scope: ScopeByCustomerQuotes},
			{Table: TableInvoices, Scope: ScopeByCustomerQuotes},
			{Table: TableQuotes, Scope: ScopeByCustomer},
			{Table: TablePasswords, Scope: ScopeByCustomer},
			{Table: TableCustomers, Scope: ScopeRoot, Root: true},
		},
	}, nil
}

// PlanDeleteQuote produces the canonical quote teardown order:
// Projects, Payments, Invoice, Quote.
func PlanDeleteQuote(quoteID uint64) (CascadePlan, error) {
	if quoteID == 0 {
		return CascadePlan{}, fmt.Errorf("%w: quote id is required", ErrValidation)
	}

	return CascadePlan{
		RootTable: TableQuotes,
		RootID:    quoteID,
		Steps: []DeleteStep{
			{Table: TableProjects, Scope: ScopeByQuote},
			{Table: TablePayments, Scope: ScopeByQuoteInvoices},
			{Table: TableInvoices, Scope: ScopeByQuote},
			{Table: TableQuotes, Scope: ScopeRoot, Root: true},
		},
	}, nil
}
