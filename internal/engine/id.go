package engine

import "github.com/google/uuid"

// generateID creates a unique ID for craft requests.
func generateID() string {
	return uuid.NewString()
}
