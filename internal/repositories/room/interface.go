package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/quizden/quizden/internal/repositories/room Repository

import (
	"context"

	"github.com/quizden/quizden/internal/models"
)

// Repository defines the interface for room document persistence and the
// per-room change feed. Writes replace the whole document; the store keeps
// whichever write lands last.
type Repository interface {
	// CreateRoom inserts a new room document, failing if the code is taken
	CreateRoom(ctx context.Context, input *CreateRoomInput) error

	// GetRoom retrieves a room by code
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// SaveRoom replaces the room document and rebroadcasts it on the feed
	SaveRoom(ctx context.Context, input *SaveRoomInput) error

	// DeleteRoom removes a room
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error

	// ListActiveCodes retrieves the codes of all live rooms
	ListActiveCodes(ctx context.Context, input *ListActiveCodesInput) (*ListActiveCodesOutput, error)

	// Subscribe opens the change feed for one room code
	Subscribe(ctx context.Context, input *SubscribeInput) (Subscription, error)
}

// Subscription delivers the full updated room document to a subscriber
// whenever any field changes. Subscribers replace their cached state
// wholesale with each delivery.
type Subscription interface {
	// Updates yields full room snapshots; closed when the subscription ends
	Updates() <-chan *models.Room

	// Close tears down the subscription
	Close() error
}
