package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"ticketpass/internal/identity"
)

// credentialNonceLength is the number of random bytes mixed into every
// ticket credential. 16 bytes of entropy makes credential reuse impossible
// by construction; the UNIQUE constraint on the tickets table is only a
// data-integrity backstop.
const credentialNonceLength = 16

// GenerateTicketCredential derives an unguessable, single-ticket credential
// from a random nonce and the mint context (event, owner, purchase time).
// The digest is what gets rendered as a QR code by the calling environment.
func GenerateTicketCredential(eventID int64, owner identity.Principal, purchaseDate time.Time) (string, error) {
	nonce := make([]byte, credentialNonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate credential nonce: %w", err)
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to initialize credential hasher: %w", err)
	}

	hasher.Write(nonce)
	fmt.Fprintf(hasher, "%d:%s:%d", eventID, owner, purchaseDate.UnixNano())

	return fmt.Sprintf("TKT-%s", hex.EncodeToString(hasher.Sum(nil))), nil
}

// MatchesCredential compares a presented credential against the stored one
// in constant time.
func MatchesCredential(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// GenerateSecureToken generates a cryptographically secure random token
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
