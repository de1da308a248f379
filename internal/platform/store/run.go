package store

import "context"

// RunTraced wraps ctx with a request id and calls fn inside the provided
// TxRunner, so every statement in the transaction traces under that request
func RunTraced(ctx context.Context, tx TxRunner, requestID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithRequestID(ctx, requestID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
