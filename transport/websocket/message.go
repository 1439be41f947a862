package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

const (
	actionBoardClick  = "board:click"
	actionHistoryJump = "history:jump"
	actionHistorySort = "history:sort"
	actionRender      = "render"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// IntentPayload carries the argument of a user intent.
type IntentPayload struct {
	Cell *int `json:"cell,omitempty"`
	Step *int `json:"step,omitempty"`
}

type RenderPayload struct {
	HTML   string          `json:"html"`
	Status view.StatusLine `json:"status"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func decodeIntent(msg *Message) (IntentPayload, error) {
	var payload IntentPayload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("%w: failed to unmarshal payload: %w", apperror.ErrInvalidArgument, err)
	}

	return payload, nil
}

func newMessage(action string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return Message{Action: action, Payload: raw}, nil
}
