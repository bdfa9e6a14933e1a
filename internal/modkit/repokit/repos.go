// Package repokit holds the seams repositories bind against.
package repokit

import (
	"context"
	"errors"

	"reviewsentry/internal/platform/store"
)

// Queryer is the read and write surface a bound repo sees
type Queryer = store.RowQuerier

// TxRunner runs a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows is a result set
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row

	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// ErrNoTx is returned by WithTx when no runner is configured
var ErrNoTx = errors.New("repokit: nil TxRunner")

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	if tx == nil {
		return ErrNoTx
	}
	return tx.Tx(ctx, fn)
}
