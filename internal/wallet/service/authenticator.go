package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/store"
)

var (
	ErrInvalidTOTPCode    = errors.New("invalid TOTP code")
	ErrDeviceNotEnrolled  = errors.New("no device authenticator enrolled")
	ErrEnrollmentExpired  = errors.New("enrollment challenge expired")
	ErrAlreadyEnrolled    = errors.New("device authenticator already enrolled")
	ErrEnrollmentNotFound = errors.New("no pending enrollment")
)

// defaultEnrollTTL bounds how long a generated TOTP secret stays valid
// before the device confirms it.
const defaultEnrollTTL = 10 * time.Minute

// EnrollResponse carries what the device needs to finish enrollment.
type EnrollResponse struct {
	Secret    string
	QRCodeURL string
	ExpiresAt time.Time
}

// AuthenticatorService is the local device authenticator: a TOTP assertion
// standing in for the platform's biometric pass/fail. Enrollment is
// two-step: the secret is only persisted once the device proves it can
// produce a valid code. Pending challenges live in memory and expire.
type AuthenticatorService struct {
	Store     store.Store
	Issuer    string
	EnrollTTL time.Duration

	mu      sync.Mutex
	pending map[string]pendingEnrollment // account id -> challenge
}

type pendingEnrollment struct {
	secret    string
	expiresAt time.Time
}

func (s *AuthenticatorService) enrollTTL() time.Duration {
	// Zero means default; tests use negative values for instant expiry.
	if s.EnrollTTL != 0 {
		return s.EnrollTTL
	}
	return defaultEnrollTTL
}

// Enroll generates a TOTP secret for the account. The secret is not
// persisted yet; Verify must confirm it first.
func (s *AuthenticatorService) Enroll(ctx context.Context, account domain.Account) (EnrollResponse, error) {
	if account.TOTPSecret != nil && *account.TOTPSecret != "" {
		return EnrollResponse{}, ErrAlreadyEnrolled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: account.Identity,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return EnrollResponse{}, err
	}

	expires := time.Now().Add(s.enrollTTL())

	s.mu.Lock()
	if s.pending == nil {
		s.pending = make(map[string]pendingEnrollment)
	}
	s.pending[account.ID] = pendingEnrollment{secret: key.Secret(), expiresAt: expires}
	s.mu.Unlock()

	return EnrollResponse{
		Secret:    key.Secret(),
		QRCodeURL: key.URL(),
		ExpiresAt: expires,
	}, nil
}

// Verify checks the device's first code against the pending challenge and,
// on success, persists the secret. Completes enrollment.
func (s *AuthenticatorService) Verify(ctx context.Context, account domain.Account, code string) error {
	s.mu.Lock()
	challenge, ok := s.pending[account.ID]
	s.mu.Unlock()

	if !ok {
		return ErrEnrollmentNotFound
	}
	if time.Now().After(challenge.expiresAt) {
		s.mu.Lock()
		delete(s.pending, account.ID)
		s.mu.Unlock()
		return ErrEnrollmentExpired
	}

	if !totp.Validate(code, challenge.secret) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Accounts().UpdateTOTPSecret(ctx, account.ID, &challenge.secret); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.pending, account.ID)
	s.mu.Unlock()
	return nil
}

// Assert validates a code against the enrolled secret. This is the
// biometric-gate stand-in callers use before touching the vault.
func (s *AuthenticatorService) Assert(ctx context.Context, account domain.Account, code string) error {
	if account.TOTPSecret == nil || *account.TOTPSecret == "" {
		return ErrDeviceNotEnrolled
	}
	if !totp.Validate(code, *account.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return nil
}

// SweepExpired drops expired pending enrollments. Called by housekeeping.
func (s *AuthenticatorService) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, challenge := range s.pending {
		if now.After(challenge.expiresAt) {
			delete(s.pending, id)
			removed++
		}
	}
	return removed
}
