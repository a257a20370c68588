package ports

import "context"

// Tx is an opaque transaction handle carried through context. Infrastructure
// owns the concrete type (for example, *gorm.DB); repositories unwrap it.
type Tx interface{}

// UnitOfWork is the engine's transaction boundary. Callback-style on purpose:
// a returned error rolls the whole unit back, nil commits it. Cancellation of
// ctx inside the callback surfaces as an error and therefore as a rollback.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// WithTxContext stores a transaction handle in context.
func WithTxContext(ctx context.Context, tx Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext reads a transaction handle from context, nil when absent.
func TxFromContext(ctx context.Context) Tx {
	return ctx.Value(txKey{})
}
