package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/pkg/idx"
	"github.com/chillarlabs/chillar/pkg/keyring"
)

// refPrefixLen is how much of the settlement reference goes into the public
// signals. Enough to correlate, short enough to not be the full reference.
const refPrefixLen = 8

// AttestService produces verifiable payment proofs: an ed25519 signature
// over a challenge derived from the settled transfer, plus the public
// signals a payout verifier needs to re-derive and check it.
type AttestService struct {
	Store store.Store
}

// Challenge is the byte string signed for a proof. Deterministic for
// identical inputs.
func Challenge(settlementRef string, amount int64, counterpartyID string) []byte {
	sum := sha256.Sum256([]byte(settlementRef + strconv.FormatInt(amount, 10) + counterpartyID))
	return sum[:]
}

// Attest signs the settlement challenge with the payer's seed and persists
// the proof. Runs strictly after settlement; the caller treats any error
// here as a soft warning, never as a payment failure.
func (s *AttestService) Attest(ctx context.Context, rawSeed, accountID, settlementRef string, amount int64, counterpartyID string) (domain.PaymentProof, error) {
	signature, err := keyring.Sign(rawSeed, Challenge(settlementRef, amount, counterpartyID))
	if err != nil {
		return domain.PaymentProof{}, fmt.Errorf("%w: %v", domain.ErrProofGeneration, err)
	}

	address, err := keyring.PublicAddress(rawSeed)
	if err != nil {
		return domain.PaymentProof{}, fmt.Errorf("%w: %v", domain.ErrProofGeneration, err)
	}
	addressHash := sha256.Sum256([]byte(address))

	prefix := settlementRef
	if len(prefix) > refPrefixLen {
		prefix = prefix[:refPrefixLen]
	}

	proof := domain.PaymentProof{
		ID:            idx.New().String(),
		AccountID:     accountID,
		SettlementRef: settlementRef,
		Signature:     signature,
		PublicSignals: []string{
			hex.EncodeToString(addressHash[:]),
			prefix,
			strconv.FormatInt(amount, 10),
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Store.Proofs().Create(ctx, proof); err != nil {
		return domain.PaymentProof{}, fmt.Errorf("%w: %v", domain.ErrProofGeneration, err)
	}
	return proof, nil
}

// GetProof fetches a stored proof by its settlement reference.
func (s *AttestService) GetProof(ctx context.Context, settlementRef string) (domain.PaymentProof, error) {
	return s.Store.Proofs().GetBySettlementRef(ctx, settlementRef)
}

// VerifyProof re-derives the challenge and checks the signature against the
// given address. Exposed for payout-verifier style consumers and tests.
func VerifyProof(proof domain.PaymentProof, address string, amount int64, counterpartyID string) bool {
	return keyring.VerifySignature(address, Challenge(proof.SettlementRef, amount, counterpartyID), proof.Signature)
}
