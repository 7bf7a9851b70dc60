package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/room4-2/LoanConverse/callflow"
	"github.com/room4-2/LoanConverse/calllog"
	"github.com/room4-2/LoanConverse/intent"
	"github.com/room4-2/LoanConverse/messages"

	"github.com/gorilla/websocket"
)

const (
	writeBufferSize = 64
	writeTimeout    = 10 * time.Second
	closeDrainDelay = 500 * time.Millisecond
	maxUtteranceLen = 4096
)

// ClientSession represents a single call connection. The telephony side
// sends transcribed customer turns; each turn is classified and fed to the
// call-flow controller, whose reply goes back as the next system utterance.
type ClientSession struct {
	ID           string
	ClientConn   *websocket.Conn
	Controller   *callflow.Controller
	Classifier   intent.Classifier
	CallLog      *calllog.Store
	CreatedAt    time.Time
	LastActivity time.Time

	// Use channels for non-blocking writes
	writeChan chan *messages.ServerMessage

	mu        sync.RWMutex
	closed    bool
	CloseChan chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClientSession wires a websocket connection to a fresh call flow.
func NewClientSession(parent context.Context, id string, clientConn *websocket.Conn, controller *callflow.Controller, classifier intent.Classifier, callLog *calllog.Store) *ClientSession {
	ctx, cancel := context.WithCancel(parent)

	clientConn.SetReadLimit(64 * 1024)

	return &ClientSession{
		ID:           id,
		ClientConn:   clientConn,
		Controller:   controller,
		Classifier:   classifier,
		CallLog:      callLog,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
		writeChan:    make(chan *messages.ServerMessage, writeBufferSize),
		CloseChan:    make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins the call: the write pump comes up, the scripted greeting is
// spoken, then the read loop consumes customer turns.
func (cs *ClientSession) Start() {
	go cs.writePump()
	cs.queueMessage(messages.NewStatusMessage(cs.ID, "connected", "Call established"))

	opening := cs.Controller.Open()
	cs.speak(opening)

	go cs.handleClientMessages()
}

// writePump handles all outgoing messages in a single goroutine
func (cs *ClientSession) writePump() {
	defer func() {
		cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
		cs.ClientConn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
	}()

	for {
		select {
		case <-cs.CloseChan:
			return
		case msg, ok := <-cs.writeChan:
			if !ok {
				return
			}
			cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cs.writeMessage(msg); err != nil {
				return
			}
		}
	}
}

func (cs *ClientSession) writeMessage(msg *messages.ServerMessage) error {
	data, err := msg.Encode()
	if err != nil {
		log.Printf("❌ [%s] Failed to encode server message: %v", shortID(cs.ID), err)
		return nil
	}
	return cs.ClientConn.WriteMessage(websocket.TextMessage, data)
}

// queueMessage adds a message to the write queue (non-blocking)
func (cs *ClientSession) queueMessage(msg *messages.ServerMessage) {
	cs.mu.RLock()
	closed := cs.closed
	cs.mu.RUnlock()
	if closed {
		return
	}
	select {
	case cs.writeChan <- msg:
		cs.mu.Lock()
		cs.LastActivity = time.Now()
		cs.mu.Unlock()
	default:
		// Queue full, drop message (shouldn't happen with proper sizing)
	}
}

func (cs *ClientSession) handleClientMessages() {
	defer cs.finish()

	for {
		select {
		case <-cs.CloseChan:
			return
		default:
			_, message, err := cs.ClientConn.ReadMessage()
			if err != nil {
				if !cs.IsClosed() {
					log.Printf("🔌 [%s] Connection closed: %v", shortID(cs.ID), err)
				}
				return
			}

			cs.mu.Lock()
			cs.LastActivity = time.Now()
			cs.mu.Unlock()

			clientMsg, err := messages.Decode(message)
			if err != nil {
				cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid message format"))
				continue
			}

			if done := cs.processClientMessage(clientMsg); done {
				return
			}
		}
	}
}

// processClientMessage handles one frame; it reports true once the call is
// over and the read loop should exit.
func (cs *ClientSession) processClientMessage(msg *messages.ClientMessage) bool {
	switch msg.Type {
	case messages.TypeUtterance:
		var payload messages.UtterancePayload
		if err := msg.DecodePayload(&payload); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid utterance payload"))
			return false
		}
		if len(payload.Text) > maxUtteranceLen {
			payload.Text = payload.Text[:maxUtteranceLen]
		}
		return cs.handleUtterance(payload.Text)

	case "control":
		var payload messages.ControlPayload
		if err := msg.DecodePayload(&payload); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid control payload"))
			return false
		}
		return cs.handleControlMessage(&payload)

	default:
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Unknown message type: "+msg.Type))
		return false
	}
}

// handleUtterance classifies one customer turn and advances the call flow.
func (cs *ClientSession) handleUtterance(text string) bool {
	exp := cs.Controller.Expectation()

	result, err := cs.Classifier.Classify(cs.ctx, text, exp)
	if err != nil {
		log.Printf("❌ [%s] Classification failed in %s: %v", shortID(cs.ID), exp.State, err)
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeClassifierError, "Could not understand, please repeat"))
		// an unclassifiable turn re-prompts instead of stalling the call
		result = intent.Result{Intent: intent.Other}
	}

	reply := cs.Controller.Advance(cs.ctx, result)
	cs.recordEvent(exp.State, string(result.Intent))
	cs.speak(reply)
	return reply.End
}

func (cs *ClientSession) handleControlMessage(payload *messages.ControlPayload) bool {
	switch payload.Action {
	case "ping":
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "pong", ""))
	case "hangup":
		log.Printf("📞 [%s] Client hung up", shortID(cs.ID))
		return true
	default:
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Unknown control action: "+payload.Action))
	}
	return false
}

func (cs *ClientSession) speak(reply callflow.Reply) {
	state := string(cs.Controller.Session().State)
	if reply.End {
		cs.queueMessage(messages.NewEndMessage(cs.ID, string(reply.Reason), reply.Utterance))
		return
	}
	cs.queueMessage(messages.NewUtteranceMessage(cs.ID, reply.Utterance, state))
}

func (cs *ClientSession) recordEvent(state, intentLabel string) {
	if cs.CallLog == nil {
		return
	}
	flow := cs.Controller.Session()
	ev := calllog.Event{
		SessionID: cs.ID,
		TurnIndex: flow.Turns,
		State:     state,
		Intent:    intentLabel,
		NextState: string(flow.State),
	}
	if err := cs.CallLog.RecordEvent(ev); err != nil {
		log.Printf("⚠️ [%s] Failed to record call event: %v", shortID(cs.ID), err)
	}
}

// finish writes the final call row and tears the session down. Queued
// messages get a short drain window before the socket closes.
func (cs *ClientSession) finish() {
	cs.recordOutcome()
	time.Sleep(closeDrainDelay)
	cs.Close()
}

func (cs *ClientSession) recordOutcome() {
	if cs.CallLog == nil {
		return
	}
	flow := cs.Controller.Session()
	reason := string(flow.EndReason)
	if reason == "" {
		reason = "abandoned"
	}
	out := calllog.Outcome{
		SessionID:     cs.ID,
		StartedAtUTC:  cs.CreatedAt.UTC().Format(time.RFC3339),
		EndedAtUTC:    time.Now().UTC().Format(time.RFC3339),
		EndReason:     reason,
		FinalState:    string(flow.State),
		Verified:      flow.Verification == callflow.Verified,
		DispatchCount: flow.DispatchCount,
		OfferVersion:  flow.Offer.Version(),
		Amount:        flow.Offer.Amount(),
		TermMonths:    flow.Offer.TermMonths(),
		Turns:         flow.Turns,
	}
	if err := cs.CallLog.RecordOutcome(out); err != nil {
		log.Printf("⚠️ [%s] Failed to record call outcome: %v", shortID(cs.ID), err)
	}
}

// Close terminates the session and cleans up resources
func (cs *ClientSession) Close() error {
	cs.mu.Lock()
	if cs.closed {
		cs.mu.Unlock()
		return nil
	}
	cs.closed = true
	cs.mu.Unlock()

	cs.cancel()

	// Close the write channel first to stop writePump
	close(cs.writeChan)

	// Signal close (for other goroutines waiting on this)
	close(cs.CloseChan)

	// Close client connection - don't write close message as writePump is stopped
	if cs.ClientConn != nil {
		cs.ClientConn.Close()
	}

	return nil
}

// IsClosed returns whether the session is closed
func (cs *ClientSession) IsClosed() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.closed
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
