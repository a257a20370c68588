package quoting

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"bluerhyno/internal/infrastructure/persistence/sqlite/model"
	"bluerhyno/internal/infrastructure/persistence/sqlite/repository"
	"bluerhyno/internal/infrastructure/persistence/sqlite/uow"
	"bluerhyno/internal/ports"
)

type stubNotifier struct {
	mu      sync.Mutex
	sent    []ports.Email
	sendErr error
}

func (n *stubNotifier) Send(_ context.Context, msg ports.Email) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *stubNotifier) sentTo() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, msg := range n.sent {
		out = append(out, msg.To)
	}
	return out
}

type fixture struct {
	svc      *Service
	repo     *repository.QuotingRepository
	uow      *uow.UnitOfWork
	notifier *stubNotifier
}

func setupService(t *testing.T) *fixture {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "quoting.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&model.Customer{}, &model.Quote{}, &model.Project{},
		&model.Invoice{}, &model.Payment{}, &model.Feedback{}, &model.Password{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	repo := repository.NewQuotingRepository(db)
	unit := uow.NewUnitOfWork(db)
	notifier := &stubNotifier{}
	svc := NewService(repo, unit, notifier, Options{BusinessEmail: "office@example.com"})
	svc.now = func() time.Time { return time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC) }

	return &fixture{svc: svc, repo: repo, uow: unit, notifier: notifier}
}

func validCreateInput(email string) CreateQuoteInput {
	return CreateQuoteInput{
		Customer: CustomerInput{
			FirstName: "Dana",
			LastName:  "Fields",
			Email:     email,
			Phone:     "555-0101",
			Address1:  "12 Post Rd",
			City:      "Austin",
			State:     "TX",
			ZipCode:   "78701",
		},
		Quote: QuoteInput{
			MaterialType: "Cedar",
			FenceLength:  120,
			HOAApproval:  "Yes",
			CityApproval: "Yes",
		},
	}
}
