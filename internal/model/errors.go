package model

// ParseError reports malformed or unreadable workflow input. Always fatal to
// the current operation, never retried.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// PricingError reports an unresolvable provider/model or a malformed pricing
// catalog.
type PricingError struct {
	Msg string
	Err error
}

func (e *PricingError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *PricingError) Unwrap() error { return e.Err }

// EstimateError wraps unexpected estimation engine failures. The engine is a
// total function over well-formed workflows, so this is a boundary reserve.
type EstimateError struct {
	Msg string
	Err error
}

func (e *EstimateError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *EstimateError) Unwrap() error { return e.Err }

// LintError wraps unexpected lint engine failures. Reserved like
// EstimateError.
type LintError struct {
	Msg string
	Err error
}

func (e *LintError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *LintError) Unwrap() error { return e.Err }
