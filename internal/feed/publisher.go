package feed

import (
	"NetInsights/internal/config"
	"NetInsights/internal/model"
	"log"

	"github.com/nats-io/nats.go"
)

// Publisher emits task events onto the feed subject. It is used by the probe
// binary and by tests; the production feed is produced by the task runner
// itself.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher connects to the NATS server named in the feed config.
func NewPublisher(cfg config.FeedConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Publisher{nc: nc, subject: cfg.Subject}, nil
}

// Publish serializes one task event and publishes it to the configured subject.
func (p *Publisher) Publish(ev *model.TaskEvent) error {
	data, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
