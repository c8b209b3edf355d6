package core

import "time"

// Outcome labels shared by the metrics port
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics records business counters for the marketplace
type Metrics interface {
	// ObserveRegistration counts a registerUser call by outcome
	ObserveRegistration(outcome string)
	// ObservePurchase counts a buyItem call by outcome and rejection reason
	ObservePurchase(outcome, reason string)
	// ObserveStoreOperation records how long a load or save took
	ObserveStoreOperation(op string, elapsed time.Duration, err error)
}
