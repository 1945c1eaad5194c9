package production

import "fmt"

// ErrUnknownResource indicates a resource name that is not part of the catalog
type ErrUnknownResource struct {
	Name string
}

func (e *ErrUnknownResource) Error() string {
	return fmt.Sprintf("unknown resource kind: %q", e.Name)
}

// ErrInvalidCatalog indicates a resource catalog that cannot be used for search
type ErrInvalidCatalog struct {
	Reason string
}

func (e *ErrInvalidCatalog) Error() string {
	return fmt.Sprintf("invalid resource catalog: %s", e.Reason)
}

// ErrMalformedCostTable indicates a cost table rejected at evaluation setup.
// Err carries the underlying cause (for example an *ErrUnknownResource).
type ErrMalformedCostTable struct {
	Reason string
	Err    error
}

func (e *ErrMalformedCostTable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed cost table: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed cost table: %s", e.Reason)
}

func (e *ErrMalformedCostTable) Unwrap() error {
	return e.Err
}

// ErrInvalidTransition indicates a build was attempted that the state cannot pay for,
// or a transition out of a terminal state. It is a contract violation of the
// expansion policy and aborts the evaluation.
//
// KindName and ResourceName are filled in by callers that know the catalog.
type ErrInvalidTransition struct {
	Kind         Kind
	KindName     string
	Resource     Kind
	ResourceName string
	Required     int
	Available    int
	Remaining    int
	Reason       string
}

func (e *ErrInvalidTransition) Error() string {
	kind := e.KindName
	if kind == "" {
		kind = fmt.Sprintf("kind#%d", e.Kind)
	}
	if e.Reason != "" {
		return fmt.Sprintf("invalid transition building %s at t=%d: %s", kind, e.Remaining, e.Reason)
	}
	resource := e.ResourceName
	if resource == "" {
		resource = fmt.Sprintf("kind#%d", e.Resource)
	}
	return fmt.Sprintf("invalid transition building %s at t=%d: need %d %s, have %d",
		kind, e.Remaining, e.Required, resource, e.Available)
}

// ErrInvalidTimeBudget indicates a time budget outside [0, MaxTimeBudget]
type ErrInvalidTimeBudget struct {
	Budget int
}

func (e *ErrInvalidTimeBudget) Error() string {
	return fmt.Sprintf("invalid time budget %d: must be between 0 and %d", e.Budget, MaxTimeBudget)
}
