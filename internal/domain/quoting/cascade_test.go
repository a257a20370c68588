package quoting

import (
	"errors"
	"testing"
)

func TestPlanDeleteCustomerOrder(t *testing.T) {
	plan, err := PlanDeleteCustomer(42)
	if err != nil {
		t.Fatalf("PlanDeleteCustomer() error = %v", err)
	}
	if plan.RootTable != TableCustomers || plan.RootID != 42 {
		t.Fatalf("plan root = %s/%d", plan.RootTable, plan.RootID)
	}

	wantTables := []Table{
		TableFeedback, TablePayments, TableProjects,
		TableInvoices, TableQuotes, TablePasswords, TableCustomers,
	}
	if len(plan.Steps) != len(wantTables) {
		t.Fatalf("plan has %d steps, want %d", len(plan.Steps), len(wantTables))
	}
	for i, step := range plan.Steps {
		if step.Table != wantTables[i] {
			t.Fatalf("step %d table = %s, want %s", i, step.Table, wantTables[i])
		}
	}
}

func TestPlanDeleteCustomerOnlyRootIsRootFlagged(t *testing.T) {
	plan, err := PlanDeleteCustomer(7)
	if err != nil {
		t.Fatalf("PlanDeleteCustomer() error = %v", err)
	}
	for i, step := range plan.Steps {
		isLast := i == len(plan.Steps)-1
		if step.Root != isLast {
			t.Fatalf("step %d (%s) root flag = %v", i, step.Table, step.Root)
		}
	}
	last := plan.Steps[len(plan.Steps)-1]
	if last.Scope != ScopeRoot {
		t.Fatalf("last step scope = %s, want %s", last.Scope, ScopeRoot)
	}
}

func TestPlanDeleteQuoteOrder(t *testing.T) {
	plan, err := PlanDeleteQuote(9)
	if err != nil {
		t.Fatalf("PlanDeleteQuote() error = %v", err)
	}

	wantTables := []Table{TableProjects, TablePayments, TableInvoices, TableQuotes}
	if len(plan.Steps) != len(wantTables) {
		t.Fatalf("plan has %d steps, want %d", len(plan.Steps), len(wantTables))
	}
	for i, step := range plan.Steps {
		if step.Table != wantTables[i] {
			t.Fatalf("step %d table = %s, want %s", i, step.Table, wantTables[i])
		}
	}
	if !plan.Steps[3].Root {
		t.Fatal("quote delete step must be the root step")
	}
}

func TestPlanRejectsZeroID(t *testing.T) {
	if _, err := PlanDeleteCustomer(0); !errors.Is(err, ErrValidation) {
		t.Fatalf("PlanDeleteCustomer(0) error = %v, want ErrValidation", err)
	}
	if _, err := PlanDeleteQuote(0); !errors.Is(err, ErrValidation) {
		t.Fatalf("PlanDeleteQuote(0) error = %v, want ErrValidation", err)
	}
}
