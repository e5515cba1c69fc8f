package core

import "github.com/google/uuid"

// IdentifierAcquire returns a new globally unique identifier string.
// Scene nodes carry one so identity survives serialization round trips.
func IdentifierAcquire() string {
	return uuid.New().String()
}

// IdentifierIsValid reports whether s parses as an identifier produced
// by IdentifierAcquire.
func IdentifierIsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
