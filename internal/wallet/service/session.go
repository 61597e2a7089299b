package service

import (
	"context"
	"errors"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/pkg/jwtx"
	"github.com/chillarlabs/chillar/pkg/keyring"
)

// ErrAuthenticationFailed reports a failed unlock attempt without saying
// which factor failed.
var ErrAuthenticationFailed = errors.New("authentication failed")

// SessionService mints short-lived wallet session tokens after a successful
// unlock. Unlocking proves either the PIN (hash compare, never a decrypt)
// or a device authenticator assertion.
type SessionService struct {
	Accounts      *AccountService
	Authenticator *AuthenticatorService
	Signer        jwtx.Signer

	Issuer string
	TTL    time.Duration
}

// SessionResult is the minted token plus who it is for.
type SessionResult struct {
	AccountID string
	Token     string
	ExpiresAt time.Time
}

// UnlockWithPIN verifies the account's PIN and mints a session token.
// Accounts still on the default credential unlock with an empty PIN; that
// session carries the "default" authentication method marker in its claims
// for audit trails.
func (s *SessionService) UnlockWithPIN(ctx context.Context, identity, pin string) (SessionResult, error) {
	account, err := s.Accounts.GetByIdentity(ctx, identity)
	if err != nil {
		return SessionResult{}, ErrAuthenticationFailed
	}

	amr := []string{"pin"}
	if account.HasPIN() {
		if err := keyring.VerifyPIN(pin, *account.PINHash); err != nil {
			return SessionResult{}, ErrAuthenticationFailed
		}
	} else {
		if pin != "" && pin != keyring.DefaultCredential {
			return SessionResult{}, ErrAuthenticationFailed
		}
		amr = []string{"default"}
	}

	return s.mint(account, amr)
}

// UnlockWithDevice verifies a TOTP assertion from the enrolled device
// authenticator and mints a session token.
func (s *SessionService) UnlockWithDevice(ctx context.Context, identity, code string) (SessionResult, error) {
	account, err := s.Accounts.GetByIdentity(ctx, identity)
	if err != nil {
		return SessionResult{}, ErrAuthenticationFailed
	}

	if err := s.Authenticator.Assert(ctx, account, code); err != nil {
		return SessionResult{}, ErrAuthenticationFailed
	}

	return s.mint(account, []string{"otp"})
}

func (s *SessionService) mint(account domain.Account, amr []string) (SessionResult, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(account.ID, account.Identity, amr, s.Issuer, ttl, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return SessionResult{}, err
	}

	return SessionResult{
		AccountID: account.ID,
		Token:     token,
		ExpiresAt: now.Add(ttl),
	}, nil
}
