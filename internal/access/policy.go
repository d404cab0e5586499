// Package access holds the ownership and liveness rules shared by the post
// and comment services. The rules return the error taxonomy directly so
// callers can pass outcomes straight to the responder.
package access

import (
	"github.com/google/uuid"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
)

// CanMutate decides whether actor may update or soft-delete a row.
//
// An inactive row is reported as not found, never as forbidden, so a caller
// probing someone else's deleted rows cannot learn they exist. The liveness
// check therefore runs before the ownership check.
func CanMutate(rowActive bool, authorID, actorID uuid.UUID) error {
	if !rowActive {
		return apperrors.ErrNotFound
	}
	if authorID != actorID {
		return apperrors.ErrForbidden
	}
	return nil
}

// CanRead decides whether a row is visible at all. Soft-deleted rows are
// indistinguishable from missing ones.
func CanRead(rowActive bool) error {
	if !rowActive {
		return apperrors.ErrNotFound
	}
	return nil
}
