package bootstrap

import (
	"context"
	"fmt"

	"medicare-call-server/internal/assistant"
	"medicare-call-server/internal/callsession"
	groqclient "medicare-call-server/internal/clients/groq"
	redisclient "medicare-call-server/internal/clients/redis"
	twilioclient "medicare-call-server/internal/clients/twilio"
	"medicare-call-server/internal/config"
	"medicare-call-server/internal/events"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/ratelimit"
	"medicare-call-server/internal/reminders"
	"medicare-call-server/internal/store"
	voiceCallHandler "medicare-call-server/internal/voicecall/handler"
	voiceCallProcessor "medicare-call-server/internal/voicecall/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Clients
	Redis  *redisclient.Client
	Twilio *twilioclient.Client

	// Handlers
	VoiceCallHandler voiceCallHandler.Handler

	// Background workers
	ReminderScheduler *reminders.Scheduler

	// Live call event feed
	EventBus *events.Bus
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize Redis; sessions and throttling fall back to in-process
	// state when it is not configured
	deps.Redis, err = redisclient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Initialize clients
	groqClient, err := groqclient.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create groq client: %w", err)
	}

	deps.Twilio, err = twilioclient.NewClient(
		cfg.Twilio.AccountSID,
		cfg.Twilio.AuthToken,
		cfg.Twilio.PhoneNumber,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create twilio client: %w", err)
	}

	// Call sessions live in Redis when available so webhook turns survive
	// process restarts
	var sessions callsession.Store
	if deps.Redis.IsEnabled() {
		sessions = callsession.NewRedisStore(deps.Redis, logger)
	} else {
		sessions = callsession.NewMemoryStore()
	}

	deps.EventBus = events.NewBus()

	// Initialize LLM-backed conversation assistant
	assistantService := assistant.NewService(groqClient, logger)

	// Initialize outbound call rate limiter
	limiter := ratelimit.NewService(deps.Redis, &deps.Store, cfg.Calls.RateLimit, logger)

	// Initialize voice call processor and handler
	voiceCallProc := voiceCallProcessor.NewProcessor(
		sessions,
		&deps.Store,
		assistantService,
		deps.Twilio,
		limiter,
		deps.EventBus,
		cfg.Calls.PublicURL,
		logger,
	)
	deps.VoiceCallHandler = voiceCallHandler.New(
		voiceCallProc,
		&deps.Store,
		deps.EventBus,
		logger,
		cfg.Twilio.MaskedAccountSID(),
		cfg.Twilio.PhoneNumber,
		cfg.Database.DatabaseHost(),
	)

	// Initialize appointment reminder scheduler
	deps.ReminderScheduler = reminders.NewScheduler(&deps.Store, deps.Twilio, deps.Redis, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error(context.Background(), "failed to close redis client", err)
		}
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(context.Background(), "failed to close database", err)
	}
}
