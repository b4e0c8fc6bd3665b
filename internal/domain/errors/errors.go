package errors

import "errors"

var (
	ErrAlreadyExists   = errors.New("already exists")
	ErrNotFound        = errors.New("not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidStatus   = errors.New("invalid shipment status")
	ErrBiddingClosed   = errors.New("bidding closed")
	ErrBidLimitReached = errors.New("bid limit reached")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNotRegistered   = errors.New("carrier not registered")
)
