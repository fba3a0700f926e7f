package mocks

import (
	"context"
	"sync/atomic"

	"roomslot/infras/postgres"
)

// Transactor runs fn with a nil transaction and counts the outcome. It does not
// serialise callers, so concurrent tests race exactly as they would against
// separate database transactions.
type Transactor struct {
	Commits   atomic.Int32
	Rollbacks atomic.Int32
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithTx(ctx context.Context, fn postgres.TxFunc) error {
	if err := fn(ctx, nil); err != nil {
		t.Rollbacks.Add(1)

		return err
	}

	t.Commits.Add(1)

	return nil
}
