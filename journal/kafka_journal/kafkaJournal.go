package kafka_journal

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	kafkaMaxAttempts = 16
)

var _ journal.Journal = (*KafkaJournal)(nil)

type KafkaAuthCredentials struct {
	Username string
	Password string
}

func (c *KafkaAuthCredentials) Mechanism() *plain.Mechanism {
	if c == nil {
		return nil
	}
	return &plain.Mechanism{
		Username: c.Username,
		Password: c.Password,
	}
}

// KafkaJournal publishes audit events to a topic. Producer-only: the
// orchestrator never consumes its own audit trail, downstream reconciliation
// jobs do.
type KafkaJournal struct {
	writer *kafka.Writer

	timeout time.Duration
}

func NewKafkaJournal(
	brokerEndpoint string,
	topic string,
	tlsConfig *tls.Config,
	producerCreds *plain.Mechanism,
	timeout time.Duration,
) (*KafkaJournal, error) {
	if brokerEndpoint == "" {
		return nil, fmt.Errorf("kafka journal requires a broker endpoint")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka journal requires a topic")
	}

	transport := &kafka.Transport{
		Dial: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		TLS: tlsConfig,
	}
	// A typed-nil mechanism stored in the SASL field would still count as
	// configured, so only set it when credentials actually exist.
	if producerCreds != nil {
		transport.SASL = producerCreds
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerEndpoint),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Transport:    transport,
		MaxAttempts:  kafkaMaxAttempts,
		BatchTimeout: timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	return &KafkaJournal{
		writer:  writer,
		timeout: timeout,
	}, nil
}

func (kj *KafkaJournal) Append(e journal.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal an event %v: %v", e, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), kj.timeout)
	defer cancel()

	if err := kj.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.ID),
		Value: data,
	}); err != nil {
		return fmt.Errorf("failed to WriteMessages: %w", err)
	}

	return nil
}

func (kj *KafkaJournal) Close() error {
	if kj.writer != nil {
		if err := kj.writer.Close(); err != nil {
			return fmt.Errorf("failed to Close writer: %w", err)
		}
	}

	return nil
}
