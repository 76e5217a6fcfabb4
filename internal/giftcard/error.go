package giftcard

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidDenomination = errors.New("unsupported gift card amount")
	ErrInvalidAmount       = errors.New("redeem amount must be positive")
	ErrNotFound            = errors.New("gift card not found")
	ErrExpired             = errors.New("gift card has expired")
	ErrInsufficientBalance = errors.New("gift card balance is too low")
	ErrDuplicateCode       = errors.New("gift card code already exists")
)
