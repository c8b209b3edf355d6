package error

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds = 4001
	CodeInvalidAmount     = 4002
	CodeInvalidInput      = 4003
	CodeUserNotFound      = 4040
	CodeUnknownBuyer      = 4041
	CodeUnknownItem       = 4042
	CodeDuplicateUser     = 4090
	CodeSelfPurchase      = 4091
	CodeBalanceLimit      = 4092

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeStorage        = 5001
	CodeDataIntegrity  = 5002
	CodeUnavailable    = 5003
)

// Base error types
var (
	// ErrStorage is returned when the ledger medium is unreadable, unwritable or corrupt
	ErrStorage = errors.New("ledger storage failure")

	// ErrDuplicateUser is returned when registering a username that is already taken
	ErrDuplicateUser = errors.New("username is already taken")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownBuyer is returned when the purchasing user doesn't exist
	ErrUnknownBuyer = errors.New("cannot find user with username given")

	// ErrUnknownItem is returned when no user owns an item with the requested id
	ErrUnknownItem = errors.New("cannot find item with id given")

	// ErrSelfPurchase is returned when the buyer already owns the item
	ErrSelfPurchase = errors.New("buyer already owns this item")

	// ErrBalanceLimit is returned when a credit would push a balance above the maximum amount
	ErrBalanceLimit = errors.New("balance would exceed the maximum amount")

	// ErrInsufficientFunds is returned when the buyer's balance is below the item price
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateItemID is returned when one item id is found in several users' items
	ErrDuplicateItemID = errors.New("item id is owned by more than one user")

	// ErrInvalidAmount is returned when a money amount has an invalid format
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a money amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUsername is returned when a username is empty
	ErrInvalidUsername = errors.New("username cannot be empty")

	// ErrInvalidName is returned when a display name is empty
	ErrInvalidName = errors.New("name cannot be empty")

	// ErrInvalidItemID is returned when an item id is not a positive integer
	ErrInvalidItemID = errors.New("item ID must be positive")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrWriterClosed is returned when a mutation is submitted after shutdown
	ErrWriterClosed = errors.New("ledger writer is shut down")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case IsInvalidInputError(err):
		return CodeInvalidInput
	case errors.Is(err, ErrUnknownBuyer):
		return CodeUnknownBuyer
	case errors.Is(err, ErrUnknownItem):
		return CodeUnknownItem
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrSelfPurchase):
		return CodeSelfPurchase
	case errors.Is(err, ErrBalanceLimit):
		return CodeBalanceLimit
	case errors.Is(err, ErrDuplicateItemID):
		return CodeDataIntegrity
	case errors.Is(err, ErrStorage):
		return CodeStorage
	case errors.Is(err, ErrWriterClosed):
		return CodeUnavailable
	default:
		return CodeInternalServer
	}
}

// StorageError wraps a failure of the ledger medium
type StorageError struct {
	Op      string // "load" or "save"
	Backend string
	Err     error
}

// Error implements the error interface for StorageError
func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger %s failed on %s backend: %v", e.Op, e.Backend, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrStorage
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// LogFields returns a map of fields for structured logging
func (e *StorageError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "storage_error",
		"op":         e.Op,
		"backend":    e.Backend,
		"error":      e.Err.Error(),
		"error_code": CodeStorage,
	}
}

// NewStorageError creates a storage error for the given operation and backend
func NewStorageError(op, backend string, err error) error {
	return &StorageError{Op: op, Backend: backend, Err: err}
}

// ConflictError is returned when a username is already registered
type ConflictError struct {
	Username string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("username %q is already taken", e.Username)
}

// Is checks if the target error is an ErrDuplicateUser
func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicateUser
}

// NewConflictError creates a new duplicate username error
func NewConflictError(username string) error {
	return &ConflictError{Username: username}
}

// PurchaseError provides detailed information about a rejected purchase.
// Reason is one of ErrUnknownBuyer, ErrUnknownItem, ErrSelfPurchase, ErrInsufficientFunds
// or ErrBalanceLimit.
type PurchaseError struct {
	Buyer   string
	ItemID  int64
	Seller  string
	Price   string
	Balance string
	Reason  error
}

// Error implements the error interface
func (e *PurchaseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "purchase of item %d by %q rejected: %v", e.ItemID, e.Buyer, e.Reason)
	if e.Price != "" {
		fmt.Fprintf(&b, " (price: %s, balance: %s)", e.Price, e.Balance)
	}
	return b.String()
}

// Unwrap returns the rejection reason
func (e *PurchaseError) Unwrap() error {
	return e.Reason
}

// LogFields returns a map of fields for structured logging
func (e *PurchaseError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "purchase_rejected",
		"buyer":      e.Buyer,
		"item_id":    e.ItemID,
		"seller":     e.Seller,
		"price":      e.Price,
		"balance":    e.Balance,
		"reason":     e.Reason.Error(),
		"error_code": ErrorCode(e.Reason),
	}
}

// NewPurchaseError creates a purchase rejection for the given buyer and item
func NewPurchaseError(buyer string, itemID int64, reason error) *PurchaseError {
	return &PurchaseError{Buyer: buyer, ItemID: itemID, Reason: reason}
}

// IntegrityError is returned when the ledger breaks the item id uniqueness invariant
type IntegrityError struct {
	ItemID int64
	Owners []string
}

// Error implements the error interface
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("item %d is owned by %d users: %s", e.ItemID, len(e.Owners), strings.Join(e.Owners, ", "))
}

// Is checks if the target error is an ErrDuplicateItemID
func (e *IntegrityError) Is(target error) bool {
	return target == ErrDuplicateItemID
}

// LogFields returns a map of fields for structured logging
func (e *IntegrityError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "data_integrity",
		"item_id":    e.ItemID,
		"owners":     e.Owners,
		"error_code": CodeDataIntegrity,
	}
}

// IsPurchaseError checks if the error is a rejected purchase
func IsPurchaseError(err error) bool {
	var pe *PurchaseError
	return errors.As(err, &pe)
}

// IsStorageError checks if the error comes from the ledger medium
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsConflictError checks if the error is a duplicate username error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateUser)
}

// IsInvalidInputError checks if the error is a rejected input field
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidItemID) ||
		errors.Is(err, ErrInvalidRequest)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrUnknownBuyer) ||
		errors.Is(err, ErrUnknownItem)
}
