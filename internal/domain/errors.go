package domain

import "errors"

var (
	// ErrNoMerchantSelected is returned when none of the requested merchants exist in the input.
	ErrNoMerchantSelected = errors.New("no usable merchant selected")

	// ErrInputEmpty is returned when no transactions survive merchant filtering.
	ErrInputEmpty = errors.New("no transactions found for the selected merchants")

	// ErrNoSessionsAfterMerge is returned when reconciliation dropped every session.
	ErrNoSessionsAfterMerge = errors.New("no sessions left after merging, the selection may only contain small residual charges")

	// ErrEmptyResult is returned when the active-hour filter removes every session.
	ErrEmptyResult = errors.New("no sessions left inside active hours")
)
