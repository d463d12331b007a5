package service

import (
	"context"
	"errors"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/repository"
)

// clearCart moves issued items from the user's cart to their history. A
// missing user or a failed write is logged and skipped; the returned bool
// reports whether the cart was actually updated.
func (s *CheckoutServiceImpl) clearCart(ctx context.Context, run *checkoutRun) (bool, error) {
	if err := run.advance(domain.CheckoutStatusCartCleared); err != nil {
		return false, err
	}

	issued := make([]domain.Command, 0, len(run.tickets))
	for _, t := range run.tickets {
		if t.Validated {
			issued = append(issued, t)
		}
	}
	if len(issued) == 0 {
		return false, nil
	}

	userCtx, cancel := context.WithTimeout(ctx, s.users.timeout)
	defer cancel()

	owner := run.request.Owner()
	user, err := s.users.repo.GetUser(userCtx, owner)
	if errors.Is(err, repository.ErrUserNotFound) {
		s.log.InfoContext(ctx, "no stored user, cart left as is", "email", owner)
		return false, nil
	}
	if err != nil {
		s.log.WarnContext(ctx, "cart not cleared", "email", owner, "error", err)
		return false, nil
	}

	cart := user.Cart.Without(issued)
	if err := s.users.repo.IssueCommands(userCtx, owner, cart, issued); err != nil {
		s.log.WarnContext(ctx, "cart not cleared", "email", owner, "error", err)
		return false, nil
	}
	return true, nil
}
