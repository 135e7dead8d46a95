// SPDX-License-Identifier: MIT

package core

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SolveAll solves independent networks concurrently, at most limit at a time
// (limit <= 0 means no limit). Every network is attempted unless ctx is done
// before its turn; the returned error joins the per-network failures.
//
// Errors:
//   - ErrSharedNetwork if the same *Network appears twice (nothing is solved).
//   - ctx.Err() for networks that never started.
func SolveAll(ctx context.Context, limit int, nets ...*Network) error {
	seen := make(map[*Network]bool, len(nets))
	for i, n := range nets {
		if n == nil {
			return fmt.Errorf("core: SolveAll: network %d is nil", i)
		}
		if seen[n] {
			return fmt.Errorf("%w: index %d", ErrSharedNetwork, i)
		}
		seen[n] = true
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	errs := make([]error, len(nets))
	for i, n := range nets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("core: network %d: %w", i, err)
				return nil
			}
			if err := n.Solve(); err != nil {
				errs[i] = fmt.Errorf("core: network %d: %w", i, err)
			}

			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
