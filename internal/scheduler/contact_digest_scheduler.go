package scheduler

import (
	"github.com/ikkim/brandsite-backend/internal/app/service"
	"github.com/ikkim/brandsite-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultContactDigestSpec runs the digest every morning at 9:00.
const DefaultContactDigestSpec = "0 9 * * *"

// UnreadCounter is the slice of the contact service the digest needs.
type UnreadCounter interface {
	CountUnread() (int64, error)
}

// ContactDigestScheduler periodically tells connected admins how many contact
// messages are still unread.
type ContactDigestScheduler struct {
	cron     *cron.Cron
	spec     string
	contacts UnreadCounter
	events   service.EventPublisher
}

func NewContactDigestScheduler(spec string, contacts UnreadCounter, events service.EventPublisher) *ContactDigestScheduler {
	if spec == "" {
		spec = DefaultContactDigestSpec
	}
	return &ContactDigestScheduler{
		cron:     cron.New(),
		spec:     spec,
		contacts: contacts,
		events:   events,
	}
}

func (s *ContactDigestScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		logger.Error("Failed to add cron job for contact digest", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Contact digest scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// RunOnce publishes a digest event when unread messages exist.
func (s *ContactDigestScheduler) RunOnce() {
	unread, err := s.contacts.CountUnread()
	if err != nil {
		logger.Error("Failed to count unread contacts", err)
		return
	}
	if unread == 0 {
		logger.Debug("No unread contacts, digest skipped")
		return
	}

	s.events.Publish(service.EventContactDigest, map[string]interface{}{
		"unread": unread,
	})
	logger.Info("Contact digest published", map[string]interface{}{
		"unread": unread,
	})
}

// Stop waits for a running digest to finish.
func (s *ContactDigestScheduler) Stop() {
	logger.Info("Stopping contact digest scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Contact digest scheduler stopped")
}
