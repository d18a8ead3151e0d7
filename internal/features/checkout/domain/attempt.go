package domain

// AttemptStatus represents the current state of one payment attempt.
type AttemptStatus string

const (
	// AttemptStatusIdle is the starting state; every attempt begins fresh here.
	AttemptStatusIdle AttemptStatus = "IDLE"
	// AttemptStatusCreatingOrder covers the order-draft submission to the backend.
	AttemptStatusCreatingOrder AttemptStatus = "CREATING_ORDER"
	// AttemptStatusAwaitingProviderConfirmation covers intent creation for card
	// payments and the simulated processing delay for direct transfers.
	AttemptStatusAwaitingProviderConfirmation AttemptStatus = "AWAITING_PROVIDER_CONFIRMATION"
	// AttemptStatusConfirmingWithProvider covers the provider's confirmation flow.
	AttemptStatusConfirmingWithProvider AttemptStatus = "CONFIRMING_WITH_PROVIDER"
	// AttemptStatusFinalizing covers the mark-paid call to the backend.
	AttemptStatusFinalizing AttemptStatus = "FINALIZING"
	// AttemptStatusSucceeded is terminal: the order is paid and finalized.
	AttemptStatusSucceeded AttemptStatus = "SUCCEEDED"
	// AttemptStatusFailed is terminal: the attempt ended without a completed payment.
	AttemptStatusFailed AttemptStatus = "FAILED"
)

// IsTerminal reports whether the status ends the attempt.
func (s AttemptStatus) IsTerminal() bool {
	return s == AttemptStatusSucceeded || s == AttemptStatusFailed
}

// String representation (for logging)
func (s AttemptStatus) String() string {
	return string(s)
}

// attemptTransitions is the allowed forward edge set. Failed is reachable from
// any non-terminal state and is handled separately in CanTransition.
var attemptTransitions = map[AttemptStatus][]AttemptStatus{
	AttemptStatusIdle:                         {AttemptStatusCreatingOrder},
	AttemptStatusCreatingOrder:                {AttemptStatusAwaitingProviderConfirmation},
	AttemptStatusAwaitingProviderConfirmation: {AttemptStatusConfirmingWithProvider, AttemptStatusFinalizing},
	AttemptStatusConfirmingWithProvider:       {AttemptStatusFinalizing},
	AttemptStatusFinalizing:                   {AttemptStatusSucceeded},
}

// CanTransition reports whether moving from one attempt status to another is legal.
func CanTransition(from, to AttemptStatus) bool {
	if to == AttemptStatusFailed {
		return !from.IsTerminal()
	}
	for _, next := range attemptTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Attempt is the transient state of one checkout attempt. It exists only for
// the duration of the attempt; an abandoned attempt leaves the created order
// unpaid on the backend.
type Attempt struct {
	// OrderID is the backend order this attempt pays for; empty until the
	// order-create step succeeds.
	OrderID string `json:"order_id"`
	// ProviderTransactionID is set only after the provider confirms.
	ProviderTransactionID string `json:"provider_transaction_id,omitempty"`
	// Status is the attempt's current state.
	Status AttemptStatus `json:"status"`
	// PaidNotFinalized marks the one case where funds moved but the backend
	// finalize failed; it survives into the Failed terminal status.
	PaidNotFinalized bool `json:"paid_not_finalized,omitempty"`
}

// AttemptOutcome is the terminal result reported to UI collaborators.
type AttemptOutcome string

const (
	// OutcomeSucceeded means the order is paid and finalized.
	OutcomeSucceeded AttemptOutcome = "SUCCEEDED"
	// OutcomeFailed means the attempt ended without moving funds.
	OutcomeFailed AttemptOutcome = "FAILED"
	// OutcomePaidButNotFinalized means the provider confirmed the payment but
	// the backend mark-paid call failed; the caller must surface it distinctly.
	OutcomePaidButNotFinalized AttemptOutcome = "PAID_BUT_NOT_FINALIZED"
)

// Outcome maps the attempt's terminal state to the result reported to callers.
func (a Attempt) Outcome() AttemptOutcome {
	switch {
	case a.Status == AttemptStatusSucceeded:
		return OutcomeSucceeded
	case a.PaidNotFinalized:
		return OutcomePaidButNotFinalized
	default:
		return OutcomeFailed
	}
}
