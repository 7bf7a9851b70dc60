package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/room4-2/LoanConverse/callflow"
	"github.com/room4-2/LoanConverse/calllog"
	"github.com/room4-2/LoanConverse/config"
	"github.com/room4-2/LoanConverse/dispatch"
	"github.com/room4-2/LoanConverse/intent"
	"github.com/room4-2/LoanConverse/loan"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// Manager manages all call sessions
type Manager struct {
	sessions   map[string]*ClientSession
	mu         sync.RWMutex
	redis      *redis.Client
	config     *config.Config
	classifier intent.Classifier
	gateway    dispatch.Gateway
	callLog    *calllog.Store
}

// NewManager creates a session manager with Redis connection
func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	// Try to connect to Redis, but don't fail if unavailable
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// Redis unavailable, continue without it
		redisClient = nil
	}

	classifier, err := buildClassifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var callLog *calllog.Store
	if cfg.CallLogPath != "" {
		callLog, err = calllog.Open(cfg.CallLogPath)
		if err != nil {
			return nil, fmt.Errorf("open call log: %w", err)
		}
	} else {
		log.Printf("⚠️ CALL_LOG_PATH empty, call logging disabled")
	}

	return &Manager{
		sessions:   make(map[string]*ClientSession),
		redis:      redisClient,
		config:     cfg,
		classifier: classifier,
		gateway:    buildGateway(cfg),
		callLog:    callLog,
	}, nil
}

// buildClassifier picks the LLM-backed classifier when an API key is set,
// and the offline keyword classifier otherwise.
func buildClassifier(ctx context.Context, cfg *config.Config) (intent.Classifier, error) {
	if cfg.GeminiAPIKey == "" {
		log.Printf("⚠️ GEMINI_API_KEY not set, using keyword classifier")
		return intent.NewKeywordClassifier(), nil
	}
	classifier, err := intent.NewGeminiClassifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("create classifier: %w", err)
	}
	return classifier, nil
}

func buildGateway(cfg *config.Config) dispatch.Gateway {
	if cfg.DispatchURL == "" {
		log.Printf("⚠️ DISPATCH_URL not set, dispatches will only be logged")
		return dispatch.NewLogGateway()
	}
	return dispatch.NewHTTPGateway(cfg.DispatchURL, cfg.DispatchToken)
}

// CreateSession starts a new call for the configured campaign recipient.
func (sm *Manager) CreateSession(ctx context.Context, clientConn *websocket.Conn) (*ClientSession, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= sm.config.MaxSessions {
		return nil, fmt.Errorf("maximum sessions reached")
	}

	controller, err := sm.buildController()
	if err != nil {
		return nil, err
	}

	session := NewClientSession(ctx, controller.CallID(), clientConn, controller, sm.classifier, sm.callLog)
	sm.storeSession(ctx, session)
	return session, nil
}

func (sm *Manager) buildController() (*callflow.Controller, error) {
	campaign := sm.config.Campaign

	birthDate, err := time.Parse("2006-01-02", campaign.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("invalid campaign birth date: %w", err)
	}
	offer, err := loan.NewOffer(campaign.ApprovedAmount, campaign.MaxTermMonths)
	if err != nil {
		return nil, fmt.Errorf("invalid campaign offer: %w", err)
	}

	identity := callflow.NewIdentity(campaign.CustomerName, campaign.FatherName, birthDate)
	flow := callflow.NewSession(identity, offer, campaign.MaxTermMonths, campaign.AccountSuffix)
	return callflow.NewController(uuid.New().String(), flow, sm.gateway), nil
}

// storeSession saves a session to memory and Redis
func (sm *Manager) storeSession(ctx context.Context, session *ClientSession) {
	sm.sessions[session.ID] = session

	if sm.redis != nil {
		sm.redis.HSet(ctx, "session:"+session.ID, map[string]interface{}{
			"created_at":    session.CreatedAt.Format(time.RFC3339),
			"last_activity": session.LastActivity.Format(time.RFC3339),
			"status":        "active",
			"state":         string(session.Controller.Session().State),
		})
		sm.redis.SAdd(ctx, "active_sessions", session.ID)
		sm.redis.Expire(ctx, "session:"+session.ID, sm.config.SessionTimeout)
	}
}

// GetSession retrieves a session by ID
func (sm *Manager) GetSession(sessionID string) (*ClientSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[sessionID]
	return session, exists
}

// RemoveSession cleans up and removes a session
func (sm *Manager) RemoveSession(ctx context.Context, sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[sessionID]
	if !exists {
		return nil
	}

	session.Close()
	delete(sm.sessions, sessionID)

	if sm.redis != nil {
		sm.redis.Del(ctx, "session:"+sessionID)
		sm.redis.SRem(ctx, "active_sessions", sessionID)
	}

	return nil
}

// GetActiveSessionCount returns current session count
func (sm *Manager) GetActiveSessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupInactiveSessions removes sessions that have been inactive
func (sm *Manager) CleanupInactiveSessions(ctx context.Context) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for id, session := range sm.sessions {
		if now.Sub(session.LastActivity) > sm.config.SessionTimeout {
			session.Close()
			delete(sm.sessions, id)

			if sm.redis != nil {
				sm.redis.Del(ctx, "session:"+id)
				sm.redis.SRem(ctx, "active_sessions", id)
			}
		}
	}
}

// StartCleanupRoutine starts periodic cleanup of inactive sessions
func (sm *Manager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.CleanupInactiveSessions(ctx)
		}
	}
}

// Shutdown closes all sessions
func (sm *Manager) Shutdown() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for id, session := range sm.sessions {
		session.Close()
		delete(sm.sessions, id)
	}

	if sm.redis != nil {
		sm.redis.Close()
	}
	if sm.callLog != nil {
		sm.callLog.Close()
	}
}
