// Package event publishes lookup notifications to RabbitMQ.
package event

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
	logger "github.com/sirupsen/logrus"
)

const (
	ExchangeEvents       = "bincheck.events"
	RoutingKeyBinChecked = "bin.checked"
)

// BinChecked is published after every successful query.
type BinChecked struct {
	ID        string    `json:"id"`
	Bin       string    `json:"bin"`
	Scheme    *string   `json:"scheme,omitempty"`
	Country   *string   `json:"country,omitempty"`
	Bank      *string   `json:"bank,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBinChecked(record *mod.BinRecord) BinChecked {
	e := BinChecked{
		ID:        uuid.NewString(),
		Bin:       record.Bin,
		Scheme:    record.Scheme,
		FetchedAt: record.FetchedAt,
		Timestamp: time.Now().UTC(),
	}
	if record.Country != nil {
		e.Country = record.Country.Name
	}
	if record.Bank != nil {
		e.Bank = record.Bank.Name
	}
	return e
}

type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
	PublishBinChecked(ctx context.Context, event BinChecked) error
	Close()
}

// EventProducerFallback logs and drops events. Used when RABBITMQ_URL is unset
// or the broker is unreachable at startup.
type EventProducerFallback struct{}

func (p *EventProducerFallback) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	logger.WithFields(logger.Fields{"exchange": exchange, "routing_key": routingKey, "mode": "fallback"}).Debug("publish skipped")
	return nil
}

func (p *EventProducerFallback) PublishBinChecked(ctx context.Context, event BinChecked) error {
	return p.Publish(ctx, ExchangeEvents, RoutingKeyBinChecked, event)
}

func (p *EventProducerFallback) Close() {}

// amqpChannel is the part of *amqp091.Channel the producer uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// EventProducer is shared by all request handlers. mu guards channel, which
// is swapped when the broker closes it.
type EventProducer struct {
	conn *amqp091.Connection
	open func() (amqpChannel, error)

	mu      sync.RWMutex
	channel amqpChannel
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	if idx := strings.Index(strings.ToLower(clean), "amqp"); idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", errors.Wrap(err, "parse amqp url")
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

func NewEventProducer(amqpURL string) (*EventProducer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}
	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}
	open := func() (amqpChannel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}
	p, err := newEventProducer(open)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newEventProducer(open func() (amqpChannel, error)) (*EventProducer, error) {
	ch, err := open()
	if err != nil {
		return nil, errors.Wrap(err, "open channel")
	}
	return &EventProducer{open: open, channel: ch}, nil
}

func (p *EventProducer) current() amqpChannel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.channel
}

func declare(ch amqpChannel, exchange string) error {
	return ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
}

// reopen replaces failed with a new channel and closes it. When another
// caller has already replaced failed, its replacement is returned instead.
func (p *EventProducer) reopen(failed amqpChannel) (amqpChannel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != failed {
		return p.channel, nil
	}
	ch, err := p.open()
	if err != nil {
		return nil, errors.Wrap(err, "reopen channel")
	}
	_ = failed.Close()
	p.channel = ch
	return ch, nil
}

// Publish declares exchange as a durable topic and sends body as JSON. A
// failed publish reopens the channel and retries once.
func (p *EventProducer) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	log := logger.WithFields(logger.Fields{"exchange": exchange, "routing_key": routingKey})
	ch := p.current()
	if err := declare(ch, exchange); err != nil {
		log.WithError(err).Warn("exchange declare failed, reopening channel")
		if ch, err = p.reopen(ch); err != nil {
			return err
		}
		if err = declare(ch, exchange); err != nil {
			return errors.Wrap(err, "declare exchange")
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := amqp091.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        payload,
	}
	if err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg); err == nil {
		return nil
	}
	log.WithError(err).Warn("publish failed, reopening channel")
	ch, reopenErr := p.reopen(ch)
	if reopenErr != nil {
		return errors.Wrap(err, "publish")
	}
	if err = declare(ch, exchange); err != nil {
		return errors.Wrap(err, "declare exchange")
	}
	return errors.Wrap(ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg), "publish retry")
}

func (p *EventProducer) PublishBinChecked(ctx context.Context, event BinChecked) error {
	return p.Publish(ctx, ExchangeEvents, RoutingKeyBinChecked, event)
}

func (p *EventProducer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// Connect returns a broker-backed publisher, or the fallback when amqpURL is
// empty or the broker cannot be reached.
func Connect(amqpURL string) Publisher {
	if strings.TrimSpace(amqpURL) == "" {
		logger.Info("RABBITMQ_URL not set, events are not published")
		return &EventProducerFallback{}
	}
	producer, err := NewEventProducer(amqpURL)
	if err != nil {
		logger.WithError(err).Warn("rabbitmq unavailable, events are not published")
		return &EventProducerFallback{}
	}
	return producer
}
