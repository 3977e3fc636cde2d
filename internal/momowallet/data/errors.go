package data

import "errors"

var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrNoSuchWithdrawal          = errors.New("withdrawal not found")
	ErrNoSuchTopup               = errors.New("topup not found")
	ErrNoSuchProfile             = errors.New("profile not found")
)
