package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrInvalid    = errors.New("invalid")
	ErrTooMany    = errors.New("too many requests")
	ErrLoad       = errors.New("inventory load failed")
	ErrInference  = errors.New("inference failed")
	ErrParse      = errors.New("model output parse failed")
	ErrNoStock    = errors.New("no stock")
	ErrUnsafePath = errors.New("unsafe asset id")
)

// NoStockError reports a recognised tag with zero matching rows.
type NoStockError struct {
	Tag string
}

func (e *NoStockError) Error() string {
	return fmt.Sprintf("no stock for tag %q", e.Tag)
}

func (e *NoStockError) Is(target error) bool {
	return target == ErrNoStock
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
