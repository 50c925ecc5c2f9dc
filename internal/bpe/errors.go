package bpe

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("bpe: invalid input")
	ErrNotTrained   = errors.New("bpe: model not trained")
	ErrUnknownToken = errors.New("bpe: unknown token")
)

// UnknownTokenError reports a token id that has no entry in the inverse table.
type UnknownTokenError struct {
	ID int
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("bpe: unknown token id %d", e.ID)
}

func (e *UnknownTokenError) Unwrap() error {
	return ErrUnknownToken
}
