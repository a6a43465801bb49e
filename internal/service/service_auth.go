package service

import (
	"context"
	"fmt"
	"time"

	"github.com/noteleaf/noteleaf/internal/config"
	"github.com/noteleaf/noteleaf/internal/crypto"
	"github.com/noteleaf/noteleaf/internal/logger"
	"github.com/noteleaf/noteleaf/internal/store"
	"github.com/noteleaf/noteleaf/internal/utils"
	"github.com/noteleaf/noteleaf/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, and JWT token
// lifecycle using an AccountRepository for persistence and argon2id for
// password hashing.
type authService struct {
	// accounts is the data-access layer used to create and look up accounts.
	accounts store.AccountRepository

	// passwords hashes and verifies credentials.
	passwords crypto.PasswordService

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// AccountRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(accounts store.AccountRepository, passwords crypto.PasswordService, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		accounts:      accounts,
		passwords:     passwords,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Register creates a new account.
//
// It validates that Username, Email and Password are non-empty, derives an
// argon2id digest from the password, and delegates persistence to the
// AccountRepository. The plaintext never reaches the store.
//
// Returns the persisted account (with a server-assigned AccountID) or:
//   - ErrInvalidDataProvided if a required field is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameTaken).
func (a *authService) Register(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	if account.Username == "" || account.Email == "" || account.Password == "" {
		log.Error().Str("username", account.Username).Msg("invalid account data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	digest, err := a.passwords.HashPassword(account.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}
	account.Password = ""
	account.PasswordHash = digest

	registered, err := a.accounts.CreateAccount(ctx, account)
	if err != nil {
		log.Err(err).Str("username", account.Username).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	return registered, nil
}

// Login authenticates an existing account.
//
// It looks the account up by username and verifies the supplied password
// against the stored argon2id digest.
//
// Returns the authenticated account record or:
//   - ErrInvalidDataProvided if Username or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. account
//     not found — see store.ErrAccountNotFound).
//   - ErrWrongPassword if verification fails.
func (a *authService) Login(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	if account.Username == "" || account.Password == "" {
		log.Error().Str("username", account.Username).Msg("invalid account data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	found, err := a.accounts.FindAccountByUsername(ctx, account.Username)
	if err != nil {
		log.Err(err).Str("username", account.Username).Msg("account search by username failed")
		return models.Account{}, fmt.Errorf("account search by username failed: %w", err)
	}

	ok, err := a.passwords.VerifyPassword(account.Password, found.PasswordHash)
	if err != nil {
		log.Err(err).Int64("id", found.AccountID).Msg("password verification failed")
		return models.Account{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Warn().
			Int64("id", found.AccountID).
			Str("username", found.Username).
			Msg("wrong password")
		return models.Account{}, ErrWrongPassword
	}

	found.PasswordHash = ""
	return found, nil
}

// CreateToken issues a signed JWT for the given account.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, account.AccountID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
