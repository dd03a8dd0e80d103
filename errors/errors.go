package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrRoleMissing      = fmt.Errorf("required role is not registered")
	ErrInvalidRounds    = fmt.Errorf("rounds must be a positive integer")
	ErrInvalidFrequency = fmt.Errorf("commentary frequency must be a positive integer")
)
