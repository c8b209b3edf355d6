package market

import (
	"context"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
)

// RegisterUser creates a new user. Blank fields and negative balances are the
// boundary's job; the engine itself guards username uniqueness.
func (s *Service) RegisterUser(ctx context.Context, name, username string, balance *entity.Money) (*entity.User, error) {
	initialBalance := s.defaultBalance
	if balance != nil {
		initialBalance = *balance
	}

	var created entity.User
	err := s.writer.Submit(ctx, "register_user", func(ctx context.Context) error {
		ledger, err := s.registry.Load(ctx)
		if err != nil {
			return err
		}

		if ledger.HasUser(username) {
			return errs.NewConflictError(username)
		}

		user, err := entity.NewUser(name, username, initialBalance)
		if err != nil {
			return err
		}

		ledger.AddUser(*user)
		if err := s.save(ctx, "register_user", ledger); err != nil {
			return err
		}

		created = user.Clone()
		return nil
	})

	if err != nil {
		outcome := coreport.OutcomeFailed
		if errs.IsConflictError(err) || errs.IsInvalidInputError(err) || errs.ErrorCode(err) == errs.CodeInvalidAmount {
			outcome = coreport.OutcomeRejected
			s.logger.Warn("User registration rejected", map[string]any{
				"username": username,
				"error":    err.Error(),
			})
		}
		s.metrics.ObserveRegistration(outcome)
		return nil, err
	}

	s.metrics.ObserveRegistration(coreport.OutcomeSuccess)
	s.logger.Info("User created", map[string]any{
		"username": username,
		"balance":  initialBalance.String(),
	})

	return &created, nil
}
