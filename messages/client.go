package messages

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

// ClientMessage represents a message from the telephony client
type ClientMessage struct {
	Type    string          `json:"type"` // "utterance", "control"
	Payload json.RawMessage `json:"payload"`
}

// UtterancePayload carries one transcribed customer turn
type UtterancePayload struct {
	Text string `json:"text"`
}

// ControlPayload contains control commands
type ControlPayload struct {
	Action string `json:"action"` // "ping", "hangup"
}

// Decode parses a raw websocket frame into a ClientMessage
func Decode(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := sonic.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodePayload parses the message payload into the given target
func (m *ClientMessage) DecodePayload(target any) error {
	return sonic.Unmarshal(m.Payload, target)
}
