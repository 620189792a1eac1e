package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoSuitableAds is returned when every candidate was filtered out.
	ErrNoSuitableAds = errors.New("no suitable ads available")
	// ErrMissingField is returned when a required request field is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidFeedback is returned for an unknown feedback kind.
	ErrInvalidFeedback = errors.New("invalid feedback")
)

// StoreError reports a failed call to the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
