package identity

// Identity is the locally persisted participant state. It survives
// reloads but not a cleared profile.
type Identity struct {
	// PlayerID is the stable local participant id
	PlayerID string `json:"player_id"`

	// Name is the last display name the participant entered
	Name string `json:"name,omitempty"`

	// LastRoom is the code of the room to attempt rejoining on load
	LastRoom string `json:"last_room,omitempty"`

	// Sessions maps room codes to the session tokens issued on join
	Sessions map[string]string `json:"sessions,omitempty"`
}

// SessionToken returns the persisted token for a room code, if any.
func (i *Identity) SessionToken(code string) string {
	if i.Sessions == nil {
		return ""
	}
	return i.Sessions[code]
}

// SetSessionToken records the token issued for a room code.
func (i *Identity) SetSessionToken(code, token string) {
	if i.Sessions == nil {
		i.Sessions = make(map[string]string)
	}
	i.Sessions[code] = token
}

// ClearRoom forgets the persisted code and token for a room.
func (i *Identity) ClearRoom(code string) {
	if i.LastRoom == code {
		i.LastRoom = ""
	}
	delete(i.Sessions, code)
}

func (i *Identity) clone() *Identity {
	out := &Identity{
		PlayerID: i.PlayerID,
		Name:     i.Name,
		LastRoom: i.LastRoom,
	}
	if i.Sessions != nil {
		out.Sessions = make(map[string]string, len(i.Sessions))
		for k, v := range i.Sessions {
			out.Sessions[k] = v
		}
	}
	return out
}
