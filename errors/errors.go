package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrUnknownEvent   = fmt.Errorf("unknown event name")
	ErrInvalidPayload = fmt.Errorf("invalid event payload")
	ErrEmptyWords     = fmt.Errorf("no words have been found")
)
