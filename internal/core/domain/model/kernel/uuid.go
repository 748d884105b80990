package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, DeriveUUID, UUIDFromString, or UUIDFromBytes",
)

// derivedNamespace scopes name-based identifiers generated by DeriveUUID.
var derivedNamespace = uuid.MustParse("6f1c0a52-3b8e-4d0a-9a53-2c7e5b1d9f40")

// UUID is a value object wrapping github.com/google/uuid.
//
// Identifiers created with NewUUID are version 7: they embed a millisecond
// timestamp, so ids of projects, quotations, parts and quotes sort by creation
// time. Identifiers created with DeriveUUID are version 5 and depend only on
// their inputs, which makes them suitable as idempotency keys.
//
// The zero value is invalid and fails Validate.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new time-ordered UUID (version 7).
//
// Example:
//
//	partID := kernel.NewUUID()
//	fmt.Println(partID.String()) // e.g., "01928f7e-6c1a-7b3e-9d2f-5a4b3c2d1e0f"
func NewUUID() UUID {
	return UUID{
		id: uuid.Must(uuid.NewV7()),
	}
}

// DeriveUUID deterministically derives an identifier from other identifiers.
// The same inputs in the same order always yield the same UUID.
//
// Example:
//
//	orderID := kernel.DeriveUUID(quotationID, partID)
func DeriveUUID(from ...UUID) UUID {
	name := make([]byte, 0, len(from)*16)
	for _, u := range from {
		name = append(name, u.id[:]...)
	}
	return UUID{id: uuid.NewSHA1(derivedNamespace, name)}
}

// UUIDFromString parses a UUID from its string representation.
// Accepts the formats supported by uuid.Parse (plain, braced, urn-prefixed).
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16 byte slice, rejecting the nil UUID.
// Used when restoring identifiers from persistence.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value (a copy).
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
