package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizden/quizden/internal/models"
	identityRepo "github.com/quizden/quizden/internal/repositories/identity"
	roomRepo "github.com/quizden/quizden/internal/repositories/room"
)

// service implements the Service interface
type service struct {
	config *Config
}

// New creates a new identity service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RoomRepo == nil {
		return nil, errors.New("room repository cannot be nil")
	}
	if cfg.IdentityStore == nil {
		return nil, errors.New("identity store cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	return &service{
		config: cfg,
	}, nil
}

// Resolve reconciles the local identity against the room document.
//
// Resolution order: a record matching the local id resumes; a record
// matching the link's session token migrates to the local id in one
// combined write; a joinable room without a match needs a join; a missing
// or in-progress room clears the locally persisted code so reloads do not
// retry forever.
func (s *service) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		input = &ResolveInput{}
	}

	ident, err := s.loadIdentity(ctx)
	if err != nil {
		return nil, err
	}

	code := input.Code
	fromLink := code != ""
	if code == "" {
		code = ident.LastRoom
	}
	if code == "" {
		return &ResolveOutput{Status: StatusNoRoom, PlayerID: ident.PlayerID}, nil
	}

	room, err := s.config.RoomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{Code: code})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			if err := s.forget(ctx, ident, code); err != nil {
				return nil, err
			}
			return &ResolveOutput{Status: StatusNotFound, PlayerID: ident.PlayerID}, nil
		}
		return nil, fmt.Errorf("room %s: %w", code, err)
	}

	// Same device: the record already carries the local id
	if player := room.Player(ident.PlayerID); player != nil {
		ident.LastRoom = code
		ident.SetSessionToken(code, player.SessionToken)
		if err := s.config.IdentityStore.Save(ctx, ident); err != nil {
			return nil, fmt.Errorf("failed to persist identity: %w", err)
		}
		return &ResolveOutput{Status: StatusResumed, PlayerID: ident.PlayerID, Room: room}, nil
	}

	// Device swap: the link's session token names a seat joined elsewhere.
	// Migrate that record to the local id, and carry any role pointer it
	// held across in the same write.
	if token := input.SessionToken; token != "" {
		if player := room.PlayerBySessionToken(token); player != nil && player.ID != ident.PlayerID {
			previousID := player.ID
			player.ID = ident.PlayerID
			if room.HostID == previousID {
				room.HostID = ident.PlayerID
			}
			if room.PickerID == previousID {
				room.PickerID = ident.PlayerID
			}
			room.UpdatedAt = s.config.Clock.Now()

			if err := s.config.RoomRepo.SaveRoom(ctx, &roomRepo.SaveRoomInput{Room: room}); err != nil {
				return nil, fmt.Errorf("room %s: %w", code, err)
			}

			ident.LastRoom = code
			ident.SetSessionToken(code, token)
			if err := s.config.IdentityStore.Save(ctx, ident); err != nil {
				return nil, fmt.Errorf("failed to persist identity: %w", err)
			}
			return &ResolveOutput{Status: StatusMigrated, PlayerID: ident.PlayerID, Room: room}, nil
		}
	}

	// No seat here. A joinable lobby invites a fresh join; anything else
	// is a dead end and the persisted code is dropped.
	if room.Phase == models.PhaseLobby {
		if !fromLink {
			// Stale persisted code with no seat behind it
			if err := s.forget(ctx, ident, code); err != nil {
				return nil, err
			}
		}
		return &ResolveOutput{Status: StatusNeedsJoin, PlayerID: ident.PlayerID, Room: room}, nil
	}

	if err := s.forget(ctx, ident, code); err != nil {
		return nil, err
	}
	return &ResolveOutput{Status: StatusInProgress, PlayerID: ident.PlayerID}, nil
}

// RememberJoin persists the room code and session token issued on join
func (s *service) RememberJoin(ctx context.Context, input *RememberJoinInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and code cannot be empty")
	}

	ident, err := s.loadIdentity(ctx)
	if err != nil {
		return err
	}

	ident.LastRoom = input.Code
	ident.SetSessionToken(input.Code, input.SessionToken)
	if input.Name != "" {
		ident.Name = input.Name
	}

	if err := s.config.IdentityStore.Save(ctx, ident); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	return nil
}

// ForgetRoom drops the persisted code and token for a room
func (s *service) ForgetRoom(ctx context.Context, input *ForgetRoomInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and code cannot be empty")
	}

	ident, err := s.loadIdentity(ctx)
	if err != nil {
		return err
	}

	return s.forget(ctx, ident, input.Code)
}

// loadIdentity loads the persisted identity, minting and persisting a
// participant id on first load
func (s *service) loadIdentity(ctx context.Context) (*identityRepo.Identity, error) {
	ident, err := s.config.IdentityStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	if ident.PlayerID == "" {
		ident.PlayerID = s.config.UUIDGenerator.NewUUID()
		if err := s.config.IdentityStore.Save(ctx, ident); err != nil {
			return nil, fmt.Errorf("failed to persist identity: %w", err)
		}
	}
	return ident, nil
}

func (s *service) forget(ctx context.Context, ident *identityRepo.Identity, code string) error {
	ident.ClearRoom(code)
	if err := s.config.IdentityStore.Save(ctx, ident); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	return nil
}
