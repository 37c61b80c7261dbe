package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/intern-match/internal/domain/events"
	log "github.com/sirupsen/logrus"
)

// ApplicationNotifier reacts to application events outside the request path.
type ApplicationNotifier struct {
	bus EventBus.Bus
}

func NewApplicationNotifier(bus EventBus.Bus) (*ApplicationNotifier, error) {
	n := &ApplicationNotifier{bus: bus}

	if err := bus.SubscribeAsync(events.ApplicationSubmittedTopic, n.onApplicationSubmitted, false); err != nil {
		return nil, err
	}
	if err := bus.SubscribeAsync(events.ApplicationStatusChangedTopic, n.onStatusChanged, false); err != nil {
		_ = bus.Unsubscribe(events.ApplicationSubmittedTopic, n.onApplicationSubmitted)
		return nil, err
	}
	return n, nil
}

func (n *ApplicationNotifier) onApplicationSubmitted(event events.ApplicationSubmitted) {
	a := event.Application
	log.WithFields(log.Fields{
		"application_id": a.ID,
		"user_id":        a.UserID,
		"internship_id":  a.PostingID,
	}).Infof("new application from %s to %s at %s", a.UserName, a.PostingTitle, a.CompanyName)
}

func (n *ApplicationNotifier) onStatusChanged(event events.ApplicationStatusChanged) {
	log.WithFields(log.Fields{
		"application_id": event.ApplicationID,
		"user_id":        event.UserID,
	}).Infof("application status changed: %s -> %s", event.From, event.To)
}

// Stop unsubscribes the notifier and waits for in-flight handlers.
func (n *ApplicationNotifier) Stop() {
	_ = n.bus.Unsubscribe(events.ApplicationSubmittedTopic, n.onApplicationSubmitted)
	_ = n.bus.Unsubscribe(events.ApplicationStatusChangedTopic, n.onStatusChanged)
	n.bus.WaitAsync()
}
