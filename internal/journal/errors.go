package journal

import "errors"

// Sentinel errors for the journal core. Callers match them with errors.Is;
// wrapping sites add the violated rule or the failing operation.
var (
	// ErrValidation marks missing or invalid caller input, e.g. an empty coin.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks a record that is absent or owned by another user.
	// The two cases are deliberately indistinguishable to the caller.
	ErrNotFound = errors.New("record not found")

	// ErrRecordNotOpen marks a close attempted on a record that already left
	// the Open state.
	ErrRecordNotOpen = errors.New("record not open")

	// ErrStoreUnavailable marks a store failure that is not an ownership or
	// absence problem. Write paths surface it; dashboard reads degrade to an
	// empty snapshot instead.
	ErrStoreUnavailable = errors.New("store unavailable")
)
