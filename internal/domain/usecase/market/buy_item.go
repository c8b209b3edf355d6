package market

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/peer-market/internal/domain/entity"
	errs "github.com/amirhossein-jamali/peer-market/internal/domain/error"
	coreport "github.com/amirhossein-jamali/peer-market/internal/domain/port/core"
)

// BuyItem transfers itemID from its current owner to buyerUsername.
//
// Checks run in this order against a single load and the first failure wins:
// unknown buyer, unknown item, self-purchase, insufficient funds, then the
// seller's balance limit. On any
// failure nothing is saved. On success the debit, credit, item move and log
// entry are persisted together by one Save.
func (s *Service) BuyItem(ctx context.Context, buyerUsername string, itemID int64) (*entity.Transaction, error) {
	var receipt entity.Transaction
	err := s.writer.Submit(ctx, "buy_item", func(ctx context.Context) error {
		ledger, err := s.registry.Load(ctx)
		if err != nil {
			return err
		}

		txn, err := s.applyPurchase(ledger, buyerUsername, itemID)
		if err != nil {
			return err
		}

		if err := s.save(ctx, "buy_item", ledger); err != nil {
			return err
		}

		receipt = txn
		return nil
	})

	if err != nil {
		s.observePurchaseFailure(buyerUsername, itemID, err)
		return nil, err
	}

	s.metrics.ObservePurchase(coreport.OutcomeSuccess, "")
	s.logger.Info("Transaction successful", map[string]any{
		"item_id": itemID,
		"buyer":   receipt.Buyer,
		"seller":  receipt.Seller,
		"price":   receipt.Price.String(),
	})

	return &receipt, nil
}

// applyPurchase validates and mutates the in-memory ledger only
func (s *Service) applyPurchase(ledger *entity.Ledger, buyerUsername string, itemID int64) (entity.Transaction, error) {
	buyer, ok := ledger.User(buyerUsername)
	if !ok {
		return entity.Transaction{}, errs.NewPurchaseError(buyerUsername, itemID, errs.ErrUnknownBuyer)
	}

	if !ledger.HasItem(itemID) {
		return entity.Transaction{}, errs.NewPurchaseError(buyerUsername, itemID, errs.ErrUnknownItem)
	}

	seller, err := ledger.Owner(itemID)
	if err != nil {
		// The only other failure is a duplicated id; refuse rather than move one copy.
		return entity.Transaction{}, err
	}

	if buyer.Username == seller.Username {
		rejection := errs.NewPurchaseError(buyerUsername, itemID, errs.ErrSelfPurchase)
		rejection.Seller = seller.Username
		return entity.Transaction{}, rejection
	}

	idx, _ := seller.FindItem(itemID)
	item := seller.Items[idx]

	if !buyer.CanAfford(item.Price) {
		rejection := errs.NewPurchaseError(buyerUsername, itemID, errs.ErrInsufficientFunds)
		rejection.Seller = seller.Username
		rejection.Price = item.Price.String()
		rejection.Balance = buyer.Balance.String()
		return entity.Transaction{}, rejection
	}

	// Checked before anyone is debited so a rejection leaves the ledger untouched.
	if !seller.CanReceive(item.Price) {
		rejection := errs.NewPurchaseError(buyerUsername, itemID, errs.ErrBalanceLimit)
		rejection.Seller = seller.Username
		rejection.Price = item.Price.String()
		rejection.Balance = seller.Balance.String()
		return entity.Transaction{}, rejection
	}

	if err := buyer.Debit(item.Price); err != nil {
		return entity.Transaction{}, err
	}
	if err := seller.Credit(item.Price); err != nil {
		return entity.Transaction{}, err
	}

	moved, err := ledger.MoveItem(itemID, seller.Username, buyer.Username)
	if err != nil {
		return entity.Transaction{}, err
	}

	txn := entity.NewTransaction(moved, seller.Username, buyer.Username, s.timeProvider)
	buyer.RecordTransaction(txn)

	return txn, nil
}

// observePurchaseFailure logs and counts a failed purchase by its reason
func (s *Service) observePurchaseFailure(buyerUsername string, itemID int64, err error) {
	var rejection *errs.PurchaseError
	var integrity *errs.IntegrityError

	switch {
	case errors.As(err, &rejection):
		s.logger.Warn("Purchase rejected", rejection.LogFields())
		s.metrics.ObservePurchase(coreport.OutcomeRejected, reasonLabel(rejection.Reason))
	case errors.As(err, &integrity):
		s.logger.Error("Ledger integrity violation during purchase", integrity.LogFields())
		s.metrics.ObservePurchase(coreport.OutcomeFailed, "data_integrity")
	default:
		s.logger.Error("Purchase failed", map[string]any{
			"buyer":   buyerUsername,
			"item_id": itemID,
			"error":   err.Error(),
		})
		s.metrics.ObservePurchase(coreport.OutcomeFailed, "error")
	}
}

// reasonLabel turns a rejection reason into a metrics label
func reasonLabel(reason error) string {
	switch {
	case errors.Is(reason, errs.ErrUnknownBuyer):
		return "unknown_buyer"
	case errors.Is(reason, errs.ErrUnknownItem):
		return "unknown_item"
	case errors.Is(reason, errs.ErrSelfPurchase):
		return "self_purchase"
	case errors.Is(reason, errs.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(reason, errs.ErrBalanceLimit):
		return "balance_limit"
	default:
		return "other"
	}
}
