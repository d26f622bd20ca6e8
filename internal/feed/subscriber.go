package feed

import (
	"NetInsights/internal/config"
	"NetInsights/internal/model"
	"log"

	"github.com/nats-io/nats.go"
)

// Subscriber consumes task events from a NATS subject and hands them to a
// handler in arrival order. It implements model.EventSource.
type Subscriber struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	subject string
}

// NewSubscriber connects to the NATS server named in the feed config.
func NewSubscriber(cfg config.FeedConfig) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Subscriber{nc: nc, subject: cfg.Subject}, nil
}

// Subscribe starts delivery. Messages that fail to decode are logged and
// skipped; the feed is trusted, so this should not happen in practice.
func (s *Subscriber) Subscribe(handler func(ev *model.TaskEvent)) error {
	sub, err := s.nc.Subscribe(s.subject, func(msg *nats.Msg) {
		ev, err := DecodeEvent(msg.Data)
		if err != nil {
			log.Printf("Error decoding task event: %v", err)
			return
		}
		handler(ev)
	})
	if err != nil {
		return err
	}
	s.sub = sub
	log.Printf("Subscribed to '%s'. Waiting for task events...", s.subject)
	return nil
}

// Close unsubscribes and closes the NATS connection.
func (s *Subscriber) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
	if s.nc != nil {
		s.nc.Close()
		log.Println("NATS connection closed.")
	}
}
