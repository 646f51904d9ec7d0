package identity

import "context"

// Service reconciles the locally persisted participant identity against
// room documents on load
type Service interface {
	// Resolve answers "who am I in this room" for the given link
	// parameters, migrating a session-token match to the local id
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)

	// RememberJoin persists the room code and session token after a join
	RememberJoin(ctx context.Context, input *RememberJoinInput) error

	// ForgetRoom drops the persisted code and token for a room
	ForgetRoom(ctx context.Context, input *ForgetRoomInput) error
}
