package domain

import "context"

// RecorderPort accepts run records. Implementations must never fail the
// calculation that produced the run; write problems are logged and dropped
type RecorderPort interface {
	Record(ctx context.Context, run Run)
}
