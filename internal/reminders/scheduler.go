// Package reminders texts patients ahead of their booked appointments. A
// ticker periodically scans upcoming appointments and sends one SMS per
// appointment inside the reminder lead time.
package reminders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	redisclient "medicare-call-server/internal/clients/redis"
	"medicare-call-server/internal/observability"
	"medicare-call-server/internal/store"
)

const (
	defaultInterval = 15 * time.Minute
	defaultLeadTime = 24 * time.Hour

	// Dedupe marks outlive the lead time so a restarted scheduler does not
	// re-text patients.
	sentMarkTTL = 48 * time.Hour
)

// Datastore lists upcoming appointments and resolves hospital names.
type Datastore interface {
	ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]store.Appointment, error)
	GetHospitalByID(ctx context.Context, id int) (store.Hospital, error)
}

// Messenger sends the reminder SMS.
type Messenger interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
}

type Scheduler struct {
	db        Datastore
	messenger Messenger
	redis     *redisclient.Client
	logger    *observability.Logger

	interval time.Duration
	leadTime time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}

	// In-process dedupe used when Redis is not configured.
	sentMu sync.Mutex
	sent   map[int64]time.Time
}

func NewScheduler(db Datastore, messenger Messenger, redis *redisclient.Client, logger *observability.Logger) *Scheduler {
	return &Scheduler{
		db:        db,
		messenger: messenger,
		redis:     redis,
		logger:    logger,
		interval:  defaultInterval,
		leadTime:  defaultLeadTime,
		sent:      make(map[int64]time.Time),
	}
}

// Start launches the scan loop. Safe to call once; subsequent calls are
// no-ops until Stop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})

	go func() {
		s.logger.Info(ctx, "appointment reminder scheduler started")
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopChan:
				s.logger.Info(ctx, "appointment reminder scheduler stopped")
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopChan)
}

// runOnce scans appointments whose date falls inside the lead window and
// texts the ones that are actually due.
func (s *Scheduler) runOnce(ctx context.Context) {
	now := time.Now()

	from := now.Truncate(24 * time.Hour)
	to := now.Add(s.leadTime).Truncate(24 * time.Hour).Add(24 * time.Hour)

	appointments, err := s.db.ListAppointmentsBetween(ctx, from, to)
	if err != nil {
		s.logger.Error(ctx, "failed to list upcoming appointments", err)
		return
	}

	for _, appt := range appointments {
		if !DueForReminder(appt, now, s.leadTime) {
			continue
		}
		if !s.markSent(ctx, appt.ID) {
			continue
		}
		s.sendReminder(ctx, appt)
	}
}

// DueForReminder reports whether the appointment starts within the lead
// window. Appointments with a time of day that cannot be parsed never come
// due.
func DueForReminder(appt store.Appointment, now time.Time, lead time.Duration) bool {
	at, err := appointmentInstant(appt)
	if err != nil {
		return false
	}
	until := at.Sub(now)
	return until > 0 && until <= lead
}

var timeOfDayLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
}

// appointmentInstant combines the date column with the freeform time-of-day
// string callers dictated.
func appointmentInstant(appt store.Appointment) (time.Time, error) {
	raw := strings.ToUpper(strings.TrimSpace(appt.Time))
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(
				appt.Date.Year(), appt.Date.Month(), appt.Date.Day(),
				t.Hour(), t.Minute(), 0, 0, time.Local,
			), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time of day: %q", appt.Time)
}

// markSent claims the reminder for this appointment. Returns false when
// another scan (or another instance, via Redis) already sent it.
func (s *Scheduler) markSent(ctx context.Context, appointmentID int64) bool {
	if s.redis.IsEnabled() {
		key := fmt.Sprintf("reminder:%d", appointmentID)
		ok, err := s.redis.GetClient().SetNX(ctx, key, 1, sentMarkTTL).Result()
		if err == nil {
			return ok
		}
		s.logger.Error(ctx, "reminder dedupe check failed, using in-process marks", err)
	}

	s.sentMu.Lock()
	defer s.sentMu.Unlock()
	if sentAt, ok := s.sent[appointmentID]; ok && time.Since(sentAt) < sentMarkTTL {
		return false
	}
	s.sent[appointmentID] = time.Now()
	return true
}

func (s *Scheduler) sendReminder(ctx context.Context, appt store.Appointment) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "appointment_id", Value: appt.ID},
	)

	hospitalName := ""
	if hospital, err := s.db.GetHospitalByID(ctx, appt.HospitalID); err == nil {
		hospitalName = hospital.Name
	} else {
		s.logger.Error(ctx, "hospital lookup for reminder failed", err)
	}

	body := fmt.Sprintf(
		"Medicare Appointment Reminder\nPatient: %s\nDate: %s\nTime: %s\nHospital: %s\nSee you there!",
		appt.Patient, appt.Date.Format("2006-01-02"), appt.Time, hospitalName,
	)

	if _, err := s.messenger.SendSMS(ctx, appt.Phone, body); err != nil {
		s.logger.Error(ctx, "failed to send reminder SMS", err)
		return
	}
	s.logger.Info(ctx, "sent appointment reminder")
}
