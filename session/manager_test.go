package session

import (
	"context"
	"testing"
	"time"

	"github.com/room4-2/LoanConverse/callflow"
	"github.com/room4-2/LoanConverse/config"
	"github.com/room4-2/LoanConverse/dispatch"
	"github.com/room4-2/LoanConverse/intent"
)

func testManagerConfig() *config.Config {
	return &config.Config{
		MaxSessions:    2,
		SessionTimeout: 30 * time.Minute,
		Campaign: config.Campaign{
			CustomerName:   "Azər Həsənzadə",
			FatherName:     "Anar",
			BirthDate:      "2001-07-12",
			ApprovedAmount: 50000,
			MaxTermMonths:  36,
			AccountSuffix:  "8214",
		},
	}
}

func newBareManager(cfg *config.Config) *Manager {
	return &Manager{
		sessions:   make(map[string]*ClientSession),
		config:     cfg,
		classifier: intent.NewKeywordClassifier(),
		gateway:    dispatch.NewLogGateway(),
	}
}

func TestBuildControllerFromCampaign(t *testing.T) {
	sm := newBareManager(testManagerConfig())

	controller, err := sm.buildController()
	if err != nil {
		t.Fatalf("buildController: %v", err)
	}
	if controller.CallID() == "" {
		t.Error("controller has no call ID")
	}

	flow := controller.Session()
	if flow.State != callflow.StateGreeting {
		t.Errorf("initial state = %s", flow.State)
	}
	if flow.Offer.Amount() != 50000 || flow.Offer.TermMonths() != 36 {
		t.Errorf("offer = %v/%d", flow.Offer.Amount(), flow.Offer.TermMonths())
	}
	if !flow.Identity.Verify("anar", "12.07.2001") {
		t.Error("campaign identity does not verify its own facts")
	}
}

func TestBuildControllerRejectsBadCampaign(t *testing.T) {
	cfg := testManagerConfig()
	cfg.Campaign.BirthDate = "12 iyul"
	if _, err := newBareManager(cfg).buildController(); err == nil {
		t.Error("expected an error for a bad birth date")
	}

	cfg = testManagerConfig()
	cfg.Campaign.ApprovedAmount = 100
	if _, err := newBareManager(cfg).buildController(); err == nil {
		t.Error("expected an error for an out-of-range amount")
	}
}

func TestCreateSessionEnforcesLimit(t *testing.T) {
	cfg := testManagerConfig()
	cfg.MaxSessions = 0
	sm := newBareManager(cfg)

	if _, err := sm.CreateSession(context.Background(), nil); err == nil {
		t.Error("expected an error when the session limit is reached")
	}
}

func TestCleanupInactiveSessions(t *testing.T) {
	_, server := newConnPair(t)
	sm := newBareManager(testManagerConfig())

	controller, err := sm.buildController()
	if err != nil {
		t.Fatalf("buildController: %v", err)
	}
	cs := NewClientSession(context.Background(), controller.CallID(), server, controller, sm.classifier, nil)
	cs.LastActivity = time.Now().Add(-time.Hour)
	sm.sessions[cs.ID] = cs

	sm.CleanupInactiveSessions(context.Background())

	if sm.GetActiveSessionCount() != 0 {
		t.Errorf("session count = %d after cleanup", sm.GetActiveSessionCount())
	}
	if !cs.IsClosed() {
		t.Error("reaped session was not closed")
	}
}
