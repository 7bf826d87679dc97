package usecase

import "fmt"

// panicError carries a recovered provider panic as an error value.
type panicError struct {
	value any
}

func (e panicError) Error() string {
	return fmt.Sprintf("provider panic: %v", e.value)
}
