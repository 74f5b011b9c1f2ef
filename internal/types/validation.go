package types

// ValidationResult is the outcome of validating a descriptor. Kind tells
// which stage produced the diagnostics; Errors is empty only for
// ValidationOK.
type ValidationResult struct {
	Kind   ValidationKind
	Errors []string
}

func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

func ValidationPassed() ValidationResult {
	return ValidationResult{Kind: ValidationOK}
}

func ValidationFailed(kind ValidationKind, errs ...string) ValidationResult {
	return ValidationResult{Kind: kind, Errors: errs}
}
