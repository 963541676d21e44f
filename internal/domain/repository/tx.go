package repository

import "context"

// TxManager groups multiple repository writes into one transactional unit.
// The callback's context carries the transaction; repositories route their
// statements through it. Any error from fn discards all partial writes.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
