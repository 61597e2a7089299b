package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/store"
)

// SpendService enforces daily spend ceilings. Day rollover is lazy: no
// background job resets counters, a stale LastSpendDate simply means
// nothing counts against today yet. Commits go through the store's guarded
// single-statement increment, so two concurrent spenders sharing a ceiling
// can never jointly breach it.
type SpendService struct {
	Store store.Store

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Today returns the current spend day in the canonical YYYY-MM-DD form.
func (s *SpendService) Today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(time.DateOnly)
}

// CheckLimit validates amount against the triple for today. Advisory only;
// Commit re-validates inside its guarded statement.
func (s *SpendService) CheckLimit(limit domain.SpendLimit, amount int64) error {
	remaining, limited := limit.Remaining(s.Today())
	if !limited {
		return nil
	}
	if amount > remaining {
		return &domain.LimitExceededError{Remaining: remaining}
	}
	return nil
}

// counterRepo is the common surface of the account and delegation spend
// counters.
type counterRepo interface {
	ResetSpent(ctx context.Context, id string, amount int64, today string) error
	AddSpent(ctx context.Context, id string, amount int64, today string) error
}

// CommitAccount records a spend against the account's own counter.
func (s *SpendService) CommitAccount(ctx context.Context, account domain.Account, amount int64) error {
	return s.commit(ctx, s.Store.Accounts(), account.ID, account.SpendLimit, amount)
}

// CommitDelegation records a spend against a delegation's counter.
func (s *SpendService) CommitDelegation(ctx context.Context, d domain.Delegation, amount int64) error {
	return s.commit(ctx, s.Store.Delegations(), d.ID, d.SpendLimit, amount)
}

// commit applies the counter update. A fresh day sets the counter outright;
// a same-day spend goes through the guarded increment, never a
// read-modify-write. The ceiling check is folded into the increment's WHERE
// clause, so a competing delegate who got there first turns this commit
// into a LimitExceededError instead of a silent overrun.
func (s *SpendService) commit(ctx context.Context, repo counterRepo, id string, limit domain.SpendLimit, amount int64) error {
	today := s.Today()

	if limit.LastSpendDate != today {
		err := repo.ResetSpent(ctx, id, amount, today)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("commit spend: %w", err)
		}
		// Lost the rollover race; the guarded increment below still applies.
	}

	if err := repo.AddSpent(ctx, id, amount, today); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return &domain.LimitExceededError{Remaining: 0}
		}
		return fmt.Errorf("commit spend: %w", err)
	}
	return nil
}
