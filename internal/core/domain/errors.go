package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Analysis Errors.

	// ErrEmptyInput indicates the ingredient list was empty or whitespace only.
	ErrEmptyInput = errors.New("empty ingredient list")

	// ErrInputTooLong indicates the ingredient list exceeds MaxInputLength.
	ErrInputTooLong = errors.New("ingredient list too long")

	// ErrNoIngredients indicates parsing produced no usable tokens.
	ErrNoIngredients = errors.New("no valid ingredients")

	// Catalog Errors.

	// ErrAliasConflict indicates an alias key is already bound to a different ingredient.
	ErrAliasConflict = errors.New("alias bound to another ingredient")

	// ErrInvalidOfferURL indicates an affiliate offer points at a non-http(s) URL.
	ErrInvalidOfferURL = errors.New("invalid offer url")

	// ErrRateLimited indicates a client exceeded its request budget.
	ErrRateLimited = errors.New("rate limited")
)

// User-facing messages for analysis validation failures.
const (
	MessageEmptyInput    = "Please enter an ingredient list to analyze."
	MessageInputTooLong  = "Input is too long. Please limit to 10,000 characters."
	MessageNoIngredients = "No valid ingredients found. Please check your input format."
)

// ValidationMessage returns the display message for an analysis validation
// error. The second return value is false for any other error.
func ValidationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return MessageEmptyInput, true
	case errors.Is(err, ErrInputTooLong):
		return MessageInputTooLong, true
	case errors.Is(err, ErrNoIngredients):
		return MessageNoIngredients, true
	default:
		return "", false
	}
}
