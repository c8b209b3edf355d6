package market

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/peer-market/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/peer-market/internal/domain/usecase/registry"
)

// Service is the transaction engine. All mutations run through one
// LedgerWriter and each one saves the full collection exactly once.
type Service struct {
	store          persistence.LedgerStore
	registry       *registry.Registry
	writer         *LedgerWriter
	timeProvider   coreport.TimeProvider
	logger         coreport.Logger
	metrics        coreport.Metrics
	defaultBalance entity.Money
}

var _ usecase.MarketUseCase = (*Service)(nil)

// Option customises a Service
type Option func(*Service)

// WithDefaultBalance overrides the balance given to users registered without one
func WithDefaultBalance(balance entity.Money) Option {
	return func(s *Service) {
		s.defaultBalance = balance
	}
}

// WithWriter replaces the writer created by NewMarketService
func WithWriter(writer *LedgerWriter) Option {
	return func(s *Service) {
		s.writer = writer
	}
}

// NewMarketService creates the engine and, unless WithWriter is given, its writer
func NewMarketService(
	store persistence.LedgerStore,
	registry *registry.Registry,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	opts ...Option,
) *Service {
	s := &Service{
		store:          store,
		registry:       registry,
		timeProvider:   timeProvider,
		logger:         logger,
		metrics:        metrics,
		defaultBalance: entity.DefaultBalance,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.writer == nil {
		s.writer = NewLedgerWriter(logger, DefaultQueueSize)
	}

	return s
}

// Shutdown drains pending mutations and stops the writer
func (s *Service) Shutdown() {
	s.writer.Shutdown()
}

// save persists the ledger, logging the failure with the operation name
func (s *Service) save(ctx context.Context, op string, ledger *entity.Ledger) error {
	if err := s.store.Save(ctx, ledger.Users()); err != nil {
		fields := map[string]any{
			"operation": op,
			"error":     err.Error(),
		}
		var storageErr *errs.StorageError
		if errors.As(err, &storageErr) {
			fields = storageErr.LogFields()
			fields["operation"] = op
		}
		s.logger.Error("Failed to save ledger", fields)
		return err
	}
	return nil
}
