package service

import "errors"

// ErrInternal indicates the widget state could not be read or written.
var ErrInternal = errors.New("internal error")

// ErrInternalQueue indicates the fetch could not be scheduled.
var ErrInternalQueue = errors.New("internal queue error")
