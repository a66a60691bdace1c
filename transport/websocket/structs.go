package websocket

import (
	"encoding/json"

	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client identifies the UI connection that owns sessions and a tally.
type Client struct {
	ID string `json:"id"`
}

type Payload struct {
	Client  *Client            `json:"client,omitempty"`
	Session *entity.Match      `json:"session,omitempty"`
	Tally   *entity.ScoreTally `json:"tally,omitempty"`
	Mark    string             `json:"mark,omitempty"`
	Mode    string             `json:"mode,omitempty"`
	Cell    *int               `json:"cell,omitempty"`
	Error   string             `json:"error,omitempty"`
}
