package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/peer-market/internal/infrastructure/adapter/model"
)

// LedgerRepository stores the ledger in PostgreSQL. Save replaces every row
// inside one SQL transaction, keeping full-document overwrite semantics.
type LedgerRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *database.ErrorMapper
}

var _ persistence.LedgerStore = (*LedgerRepository)(nil)

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:          db,
		logger:      logger,
		errorMapper: database.NewErrorMapper(),
	}
}

// Load reads every user with items and transactions in stored order
func (r *LedgerRepository) Load(ctx context.Context) ([]entity.User, error) {
	var rows []model.User
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("load", err)
	}

	users, err := modelsToUsers(rows)
	if err != nil {
		r.logger.Error("Corrupt ledger rows", map[string]any{
			"error": err.Error(),
		})
		return nil, errs.NewStorageError("load", database.Backend, err)
	}

	r.logger.Debug("Ledger loaded from database", map[string]any{
		"users": len(users),
	})
	return users, nil
}

// Save replaces the stored ledger with users
func (r *LedgerRepository) Save(ctx context.Context, users []entity.User) error {
	rows, err := usersToModels(users)
	if err != nil {
		return errs.NewStorageError("save", database.Backend, err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := wipe.Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := wipe.Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := wipe.Delete(&model.User{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return r.handleDatabaseError("save", err)
	}

	r.logger.Debug("Ledger saved to database", map[string]any{
		"users": len(rows),
	})
	return nil
}

// handleDatabaseError logs and maps a database failure
func (r *LedgerRepository) handleDatabaseError(operation string, err error) error {
	mapped := r.errorMapper.MapError(err, operation)
	r.logger.Error("Database error on ledger "+operation, map[string]any{
		"error": err.Error(),
		"kind":  string(r.errorMapper.Classify(err)),
	})
	return mapped
}
