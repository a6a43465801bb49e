// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the key used to store the account identifier in the
// context. Used together with GetAccountIDFromContext for type-safe
// retrieval of the account ID from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AccountIDCtxKey, int64(42))
var AccountIDCtxKey = contextKey("accountID")

// GetAccountIDFromContext retrieves the account identifier from the context.
//
// Returns the account ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	accountID, ok := utils.GetAccountIDFromContext(ctx)
//	if !ok {
//	    // handle missing account in context
//	}
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}
