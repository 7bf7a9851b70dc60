package messages

import "github.com/bytedance/sonic"

// Error codes
const (
	ErrCodeInvalidMessage   = "INVALID_MESSAGE"
	ErrCodeClassifierError  = "CLASSIFIER_ERROR"
	ErrCodeSessionFailed    = "SESSION_FAILED"
	ErrCodeConnectionClosed = "CONNECTION_CLOSED"
	ErrCodeServerFull       = "SERVER_FULL"
)

// Message types
const (
	TypeUtterance = "utterance"
	TypeStatus    = "status"
	TypeError     = "error"
	TypeEnd       = "end"
)

// ServerMessage represents a message sent to the telephony client
type ServerMessage struct {
	Type      string      `json:"type"` // "utterance", "status", "error", "end"
	SessionID string      `json:"sessionId,omitempty"`
	Payload   interface{} `json:"payload"`
}

// SpeakPayload contains one system utterance to be spoken to the customer
type SpeakPayload struct {
	Text  string `json:"text"`
	State string `json:"state"`
}

// StatusPayload contains status updates
type StatusPayload struct {
	Status  string `json:"status"` // "connected", "disconnected"
	Message string `json:"message,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EndPayload reports why the call terminated
type EndPayload struct {
	Reason string `json:"reason"`
	Text   string `json:"text,omitempty"`
}

// NewUtteranceMessage creates a system utterance message
func NewUtteranceMessage(sessionID, text, state string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeUtterance,
		SessionID: sessionID,
		Payload: SpeakPayload{
			Text:  text,
			State: state,
		},
	}
}

// NewStatusMessage creates a status message
func NewStatusMessage(sessionID, status, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeStatus,
		SessionID: sessionID,
		Payload: StatusPayload{
			Status:  status,
			Message: message,
		},
	}
}

// NewErrorMessage creates an error message
func NewErrorMessage(sessionID, code, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeError,
		SessionID: sessionID,
		Payload: ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// NewEndMessage creates a call termination message
func NewEndMessage(sessionID, reason, text string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeEnd,
		SessionID: sessionID,
		Payload: EndPayload{
			Reason: reason,
			Text:   text,
		},
	}
}

// Encode serializes a server message for the wire
func (m *ServerMessage) Encode() ([]byte, error) {
	return sonic.Marshal(m)
}
