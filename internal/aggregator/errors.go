package aggregator

import "fmt"

// StructuralError reports a payload that is malformed at the envelope level:
// missing company_id or module_red_flags, or a module's flag list that is not
// a list.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return e.Reason
}

// ValidationError reports an individual flag that fails the contract: missing
// required fields, unknown severity, or unknown risk category.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// AggregationError is the single error surface of the engine. It wraps the
// specific structural or validation cause and identifies the upstream module
// key that produced the bad data, so callers can trace the offender.
type AggregationError struct {
	ModuleKey string
	Err       error
}

func (e *AggregationError) Error() string {
	if e.ModuleKey == "" {
		return fmt.Sprintf("aggregation failed: %v", e.Err)
	}
	return fmt.Sprintf("invalid flag from module %s: %v", e.ModuleKey, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
