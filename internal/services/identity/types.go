package identity

import (
	"github.com/quizden/quizden/internal/common/clock"
	"github.com/quizden/quizden/internal/common/uuid"
	"github.com/quizden/quizden/internal/models"
	identityRepo "github.com/quizden/quizden/internal/repositories/identity"
	roomRepo "github.com/quizden/quizden/internal/repositories/room"
)

// ResolveStatus describes the outcome of reconciling the local identity
// against a room document
type ResolveStatus string

const (
	// StatusResumed means a player record matched the local id
	StatusResumed ResolveStatus = "resumed"

	// StatusMigrated means a session token matched a record joined from
	// another device and the record now carries the local id
	StatusMigrated ResolveStatus = "migrated"

	// StatusNeedsJoin means the room is joinable but holds no record for
	// this participant; the UI should prompt for a name before joining
	StatusNeedsJoin ResolveStatus = "needs_join"

	// StatusNotFound means the room code has no matching document
	StatusNotFound ResolveStatus = "not_found"

	// StatusInProgress means a fresh join was attempted against a room
	// past the lobby phase
	StatusInProgress ResolveStatus = "in_progress"

	// StatusNoRoom means there was no code to resolve against
	StatusNoRoom ResolveStatus = "no_room"
)

// Config holds configuration for the identity service
type Config struct {
	// Repository dependencies
	RoomRepo      roomRepo.Repository
	IdentityStore identityRepo.Store

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// ResolveInput contains parameters for reconciling on load
type ResolveInput struct {
	// Code is the room code carried by a shareable link; empty falls back
	// to the locally persisted code
	Code string

	// SessionToken is the opaque token carried by a shareable link for
	// device-swap reconnection
	SessionToken string
}

// ResolveOutput contains the reconciliation result
type ResolveOutput struct {
	Status ResolveStatus

	// PlayerID is the stable local participant id
	PlayerID string

	// Room is the fetched document, when one exists
	Room *models.Room
}

// RememberJoinInput persists a successful join for later rejoins
type RememberJoinInput struct {
	Code         string
	SessionToken string
	Name         string
}

// ForgetRoomInput clears the persisted code and token for a room
type ForgetRoomInput struct {
	Code string
}
