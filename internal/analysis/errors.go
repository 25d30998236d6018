package analysis

import (
	"errors"
	"fmt"
)

// ValidationError reports input rejected before any external call was made.
type ValidationError struct {
	// Field names the offending input ("prompt", "num_samples").
	Field string
	// Reason says what was wrong with it.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ExternalServiceError wraps a failure from the generation/scoring
// collaborator. The engine never retries; one failure fails the whole call.
type ExternalServiceError struct {
	// Stage names the external stage that failed ("sampling").
	Stage string
	// Err is the underlying collaborator error.
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// ComputationError reports a broken contract inside the analysis pipeline,
// such as an empty sample set reaching a detector. It signals a programming
// error, not a recoverable condition.
type ComputationError struct {
	// Op names the component that detected the violation.
	Op string
	// Reason describes the violated invariant.
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsExternalService reports whether err is an ExternalServiceError anywhere in
// its chain.
func IsExternalService(err error) bool {
	var ee *ExternalServiceError
	return errors.As(err, &ee)
}
