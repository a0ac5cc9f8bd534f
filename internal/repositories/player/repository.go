// Package player persists the player snapshot
package player

//go:generate mockgen -destination=mock/mock_repository.go -package=playermock github.com/KirkDiggler/cultivation-sim/internal/repositories/player Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/cultivation-sim/internal/entities"
)

// Repository stores one snapshot per logical key. Save is a full
// overwrite, so repeating it is harmless.
type Repository interface {
	// Load returns the snapshot stored under Key
	// Returns errors.NotFound if nothing was saved
	// Returns errors.DataLoss if the stored snapshot cannot be decoded
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save writes the whole snapshot under Key
	// Returns errors.InvalidArgument for a nil player or empty key
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes the snapshot. Deleting a missing key is not an error.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// LoadInput defines the input for loading a snapshot
type LoadInput struct {
	Key string
}

// LoadOutput defines the output for loading a snapshot
type LoadOutput struct {
	Player  *entities.Player
	SavedAt time.Time
}

// SaveInput defines the input for saving a snapshot
type SaveInput struct {
	Key    string
	Player *entities.Player
}

// SaveOutput defines the output for saving a snapshot
type SaveOutput struct {
	SavedAt time.Time
}

// DeleteInput defines the input for deleting a snapshot
type DeleteInput struct {
	Key string
}

// DeleteOutput defines the output for deleting a snapshot
type DeleteOutput struct {
	Deleted bool
}

const (
	errKeyEmpty  = "snapshot key cannot be empty"
	errPlayerNil = "player cannot be nil"
)

// record is the stored envelope
type record struct {
	SavedAt time.Time        `json:"savedAt"`
	Player  *entities.Player `json:"player"`
}
