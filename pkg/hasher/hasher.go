// Package hasher provides the one-way password digests accepted by the account service.
package hasher

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmSHA256 = "sha256"
	AlgorithmBcrypt = "bcrypt"
)

// SHA256 produces an unsalted lowercase hex digest, the format of credentials
// already stored by earlier deployments.
type SHA256 struct{}

func NewSHA256() *SHA256 {
	return &SHA256{}
}

func (SHA256) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256) Verify(password, digest string) bool {
	candidate, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (b *Bcrypt) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// Hasher is satisfied by every digest in this package.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// New selects a hasher by algorithm name.
func New(algorithm string, bcryptCost int) (Hasher, error) {
	switch algorithm {
	case AlgorithmSHA256, "":
		return NewSHA256(), nil
	case AlgorithmBcrypt:
		return NewBcrypt(bcryptCost), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", algorithm)
	}
}
