package dispatch

import (
	"context"
	"fmt"
	"log"
)

// LogGateway is used when no SMS service URL is configured. It acknowledges
// every request and logs the send, so development calls can run end to end.
type LogGateway struct {
	count int
}

func NewLogGateway() *LogGateway {
	return &LogGateway{}
}

func (g *LogGateway) Dispatch(_ context.Context, req Request) (Ack, error) {
	g.count++
	log.Printf("📨 [%s] dispatch (log only): %.0f manat, %d months, offer v%d, %d phone(s)",
		shortID(req.SessionID), req.Amount, req.TermMonths, req.OfferVersion, len(req.Phones))
	return Ack{Reference: fmt.Sprintf("log-%d", g.count)}, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
