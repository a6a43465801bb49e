package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the JWT issued by the remote store for an authenticated
// account. This bearer token is distinct from the pairing token: it guards
// the /sync endpoints, not the device's local server.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be transmitted in the Authorization header. AccountID is a
// cached, parsed copy of the "sub" claim.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard RFC 7519 claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// AccountID is the owner identifier extracted from the "sub" claim.
	AccountID int64 `json:"-"`
}

// GetAccountID extracts the account identifier from the token's "sub"
// claim and parses it as a base-10 int64.
func (t *Token) GetAccountID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting AccountID from token: %w", err)
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting AccountID from token to int64: %w", err)
	}

	return id, nil
}

// String returns the compact JWS serialization of the token. It implements
// the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
