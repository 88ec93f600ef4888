// Package money provides Money, an immutable amount-plus-currency value held
// as integer minor units, with currency-safe arithmetic and a canonical text
// form ("USD 19.99") that round-trips exactly.
//
// Arithmetic never mixes currencies, never silently clamps and never rounds
// except where documented: Multiply and ExchangeRate.Convert round half to
// even at the currency's scale. Every failure wraps one of the package's
// sentinel errors and can be checked with errors.Is.
package money
