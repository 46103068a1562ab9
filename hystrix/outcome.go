package hystrix

// OutcomeKind classifies the terminal result of a single command execution.
type OutcomeKind int

const (
	// OutcomeSuccess means the work function returned without error in time.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeFailure means the work function returned an error (or panicked).
	OutcomeFailure
	// OutcomeTimeout means the execution deadline elapsed before completion.
	OutcomeTimeout
	// OutcomeRejected means the group's pool had no capacity at submit time.
	OutcomeRejected
	// OutcomeShortCircuited means the circuit breaker refused the call.
	OutcomeShortCircuited
)

// String returns the outcome name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeRejected:
		return "rejected"
	case OutcomeShortCircuited:
		return "short-circuited"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome kind is a valid terminal classification.
func (k OutcomeKind) Terminal() bool {
	return k >= OutcomeSuccess && k <= OutcomeShortCircuited
}
