// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// PasswordHasher hashes account passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, which must lie within
// [bcrypt.MinCost, bcrypt.MaxCost]. Zero selects [bcrypt.DefaultCost].
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("sec: bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Cost returns the bcrypt cost of new hashes.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash hashes a plain-text password.
func (h *PasswordHasher) Hash(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > maxPasswordBytes {
		return "", fmt.Errorf("sec: password longer than %d bytes", maxPasswordBytes)
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), h.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Check compares a plain-text password with a stored hash.
func (h *PasswordHasher) Check(plainTextPassword, existingHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}

// NeedsRehash reports whether existingHash was produced at another cost.
func (h *PasswordHasher) NeedsRehash(existingHash string) bool {
	cost, err := bcrypt.Cost([]byte(existingHash))
	return err != nil || cost != h.cost
}
