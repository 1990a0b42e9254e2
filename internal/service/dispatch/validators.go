package dispatch

import "github.com/google/uuid"

func isValidID(id uuid.UUID) bool {
	return id != uuid.Nil
}
