package service

import "errors"

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidPhoneNumber  = errors.New("invalid phone number")
	ErrProfileIncomplete   = errors.New("profile missing mobile number or provider")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrTransactionFailed   = errors.New("transaction failed")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrCallbackMalformed   = errors.New("malformed callback payload")
	ErrTransitionRejected  = errors.New("status transition rejected")
)
