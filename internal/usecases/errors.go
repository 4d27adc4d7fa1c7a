package usecases

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientBananas = errors.New("not enough bananas")
	ErrAlreadyOwned        = errors.New("item already owned")
)
