package newsletter

import "errors"

var (
	ErrEmptyEmail         = errors.New("email is required")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrStorage            = errors.New("subscriber storage failure")
)
