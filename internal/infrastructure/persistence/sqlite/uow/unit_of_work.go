package uow

import (
	"context"

	"gorm.io/gorm"

	"bluerhyno/internal/ports"
)

// UnitOfWork implements ports.UnitOfWork with gorm. One engine operation maps
// to exactly one transaction; the handle travels in the callback context so
// repositories opt in without knowing gorm.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ports.WithTxContext(ctx, tx))
	})
}
