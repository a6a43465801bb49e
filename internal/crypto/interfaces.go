package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_service_mock.go -package=mock

// PasswordService owns all credential-related cryptography on the server
// side. It knows nothing about the network, the database, or accounts.
//
// Scheme:
//
//	encoded  = HashPassword(password)            (at sign-up)
//	ok       = VerifyPassword(password, encoded) (at login)
//	token    = GeneratePairingToken()            (at pairing-session creation)
type PasswordService interface {
	// HashPassword derives an Argon2id digest from the plaintext password
	// and returns it in PHC string format together with its random salt.
	// The plaintext is never stored.
	HashPassword(password string) (string, error)

	// VerifyPassword re-derives the digest from the candidate password and
	// the salt embedded in encoded, and compares the two in constant time.
	VerifyPassword(password, encoded string) (bool, error)

	// GeneratePairingToken returns a fresh opaque bearer token for a
	// pairing session: 32 bytes from the OS CSPRNG, base64url-encoded
	// without padding.
	GeneratePairingToken() (string, error)
}
