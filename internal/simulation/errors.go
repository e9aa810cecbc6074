package simulation

import "fmt"

// ValidationError reports a malformed or out-of-range parameter field.
// It is returned before any simulation work starts; a run is never partial.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameters: %s: %s", e.Field, e.Message)
}

// ConvergenceError records a withdrawal/tax fixed point that failed to
// converge within its iteration bound. It is not fatal to the batch: the
// affected trial is marked depleted at the given age.
type ConvergenceError struct {
	Trial      int
	Age        int
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("trial %d: withdrawal tax gross-up did not converge at age %d after %d iterations",
		e.Trial, e.Age, e.Iterations)
}

// TrialError wraps an unexpected fault inside one trial (for example a
// sampler producing a non-finite return). The trial is excluded from
// aggregation; the batch continues unless the failure rate exceeds the
// configured threshold.
type TrialError struct {
	Trial     int
	Age       int
	Component string
	Err       error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("trial %d: %s failed at age %d: %v", e.Trial, e.Component, e.Age, e.Err)
}

func (e *TrialError) Unwrap() error { return e.Err }
