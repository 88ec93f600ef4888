package money

import "errors"

// ErrInvalidCurrency indicates a malformed or unknown currency code.
var ErrInvalidCurrency = errors.New("invalid currency")

// ErrInvalidAmount indicates an amount that cannot be represented in whole
// minor units of its currency.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrCurrencyMismatch indicates an operation between amounts of different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrOverflow indicates that a result does not fit the minor-unit range.
var ErrOverflow = errors.New("amount overflow")

// ErrParse indicates malformed textual or binary input.
var ErrParse = errors.New("parse error")

// ErrInvalidExchangeRate indicates a non-positive rate or a rate between a currency and itself.
var ErrInvalidExchangeRate = errors.New("invalid exchange rate")
