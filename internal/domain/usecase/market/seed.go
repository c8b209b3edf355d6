package market

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
)

// Seed writes the given users when the store holds no users yet.
// It reports whether anything was written.
func (s *Service) Seed(ctx context.Context, users []entity.User) (bool, error) {
	if len(users) == 0 {
		return false, nil
	}

	if err := validateSeed(users); err != nil {
		return false, err
	}

	seeded := false
	err := s.writer.Submit(ctx, "seed", func(ctx context.Context) error {
		ledger, err := s.registry.Load(ctx)
		if err != nil {
			return err
		}

		if ledger.Len() > 0 {
			s.logger.Info("Ledger already populated, skipping seed", map[string]any{
				"users": ledger.Len(),
			})
			return nil
		}

		seedLedger := entity.NewLedger(users)
		if err := s.save(ctx, "seed", seedLedger); err != nil {
			return err
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		s.logger.Info("Ledger seeded", map[string]any{
			"users": len(users),
		})
	}
	return seeded, nil
}

// validateSeed rejects seed data that would break username or item id uniqueness
func validateSeed(users []entity.User) error {
	names := make(map[string]struct{}, len(users))
	ids := make(map[int64]string)

	for _, u := range users {
		if u.Username == "" {
			return errs.ErrInvalidUsername
		}
		if _, dup := names[u.Username]; dup {
			return errs.NewConflictError(u.Username)
		}
		names[u.Username] = struct{}{}

		if u.Balance < 0 {
			return fmt.Errorf("seed user %q: %w", u.Username, errs.ErrNegativeAmount)
		}

		for _, item := range u.Items {
			if owner, dup := ids[item.ID]; dup {
				return &errs.IntegrityError{ItemID: item.ID, Owners: []string{owner, u.Username}}
			}
			ids[item.ID] = u.Username
		}
	}
	return nil
}
