package models

import "errors"

var (
	ErrNotFound     = errors.New("not found")           // 404
	ErrEmptyCart    = errors.New("cart is empty")       // 400
	ErrCartTooLarge = errors.New("cart is too large")   // 400
	ErrConflict     = errors.New("conflict")            // 409
	ErrUnavailable  = errors.New("storage unavailable") // 503
)
