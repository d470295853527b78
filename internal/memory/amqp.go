package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// CorrectionMessage is published for every correction that was remembered.
type CorrectionMessage struct {
	Type          string    `json:"type"`
	UserID        uuid.UUID `json:"userId"`
	TransactionID uuid.UUID `json:"transactionId"`
	Vendor        string    `json:"vendor"`
	OldCategory   string    `json:"oldCategory"`
	NewCategory   string    `json:"newCategory"`
	Reasoning     string    `json:"reasoning"`
	Timestamp     time.Time `json:"timestamp"`
}

const correctionStored = "correction.stored"

// Publisher announces stored corrections to other consumers.
type Publisher interface {
	PublishCorrection(ctx context.Context, correction models.Correction) error
}

// AMQPPublisher publishes corrections to a durable direct exchange.
type AMQPPublisher struct {
	mu           sync.Mutex
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewAMQPPublisher(url, exchangeName, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return p, nil
}

func (p *AMQPPublisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		p.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// The routing key is the queue name
	err = p.channel.QueueBind(p.queueName, p.queueName, p.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (p *AMQPPublisher) PublishCorrection(ctx context.Context, correction models.Correction) error {
	body, err := json.Marshal(CorrectionMessage{
		Type:          correctionStored,
		UserID:        correction.UserID,
		TransactionID: correction.TransactionID,
		Vendor:        correction.Vendor,
		OldCategory:   correction.OldCategory,
		NewCategory:   correction.NewCategory,
		Reasoning:     correction.Reasoning,
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		p.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().Str("exchange", p.exchangeName).Str("queue", p.queueName).Str("user", correction.UserID.String()).Msg("Published correction")
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// PublishingStore announces every correction its Store remembered.
//
// A failed publish is logged. The correction is remembered regardless.
type PublishingStore struct {
	Store
	publisher Publisher
}

func NewPublishingStore(store Store, publisher Publisher) PublishingStore {
	return PublishingStore{Store: store, publisher: publisher}
}

func (s PublishingStore) Remember(ctx context.Context, correction models.Correction) error {
	err := s.Store.Remember(ctx, correction)
	if err != nil {
		return err
	}

	err = s.publisher.PublishCorrection(ctx, correction)
	if err != nil {
		log.Error().Err(err).Str("user", correction.UserID.String()).Msg("Correction could not be published")
	}

	return nil
}
