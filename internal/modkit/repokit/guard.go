package repokit

import (
	"context"
	"fmt"
	"time"
)

// GuardTimeout caps MustGuard when the caller set no deadline
const GuardTimeout = 5 * time.Second

// MustGuard panics unless every configured backend answers st.Guard
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if _, has := ctx.Deadline(); !has {
		c, cancel := context.WithTimeout(ctx, GuardTimeout)
		defer cancel()
		ctx = c
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("startup guard: %w", err))
	}
}
