// Package service holds helpers shared by the entity services.
package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

// Entity is any record with a surrogate key.
type Entity interface {
	EntityID() uuid.UUID
}

// EnsureUnique interprets the result of a uniqueness lookup. A NotFound
// lookup or a hit on self passes; any other hit is a DuplicateValue on field.
// Pass uuid.Nil as self on create.
func EnsureUnique[T Entity](field string, self uuid.UUID, found T, err error) error {
	if err != nil {
		if errors.HasCode(err, errors.ErrNotFound) {
			return nil
		}
		return err
	}
	if found.EntityID() == self {
		return nil
	}
	return errors.DuplicateValue(field)
}

// RequireValue rejects an update that blanks a required field.
func RequireValue(field string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return errors.MissingField(field)
	}
	return nil
}
