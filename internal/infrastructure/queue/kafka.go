package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Conte777/songid-bot/config"
)

// messageReader is the subset of *kafka.Reader used by KafkaQueue
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaQueue produces updates with sarama and consumes them with a kafka-go group reader.
// A document is committed as soon as it is handed to a worker; requeue produces a new copy.
type KafkaQueue struct {
	producer    sarama.SyncProducer
	reader      messageReader
	topic       string
	pollTimeout time.Duration
	mu          sync.Mutex
	logger      zerolog.Logger
}

// NewKafkaQueue creates a KafkaQueue connected to the configured brokers
func NewKafkaQueue(cfg *config.KafkaConfig, pollTimeout time.Duration, logger zerolog.Logger) (*KafkaQueue, error) {
	brokers := cfg.Brokers
	if len(brokers) == 0 {
		brokers = []string{"localhost:9093"}
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,    // 1 byte - return immediately when message available
		MaxBytes: 10e6, // 10MB
	})

	logger.Info().
		Strs("brokers", brokers).
		Str("group_id", cfg.GroupID).
		Str("topic", cfg.Topic).
		Msg("Kafka queue initialized")

	return newKafkaQueue(producer, reader, cfg.Topic, pollTimeout, logger), nil
}

func newKafkaQueue(producer sarama.SyncProducer, reader messageReader, topic string, pollTimeout time.Duration, logger zerolog.Logger) *KafkaQueue {
	return &KafkaQueue{
		producer:    producer,
		reader:      reader,
		topic:       topic,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// Push implements deps.UpdateQueue interface
func (q *KafkaQueue) Push(_ context.Context, raw []byte) error {
	partition, offset, err := q.producer.SendMessage(&sarama.ProducerMessage{
		Topic: q.topic,
		Value: sarama.ByteEncoder(raw),
	})
	if err != nil {
		return fmt.Errorf("failed to send update to Kafka: %w", err)
	}

	q.logger.Debug().
		Str("topic", q.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Update produced")

	return nil
}

// Pop implements deps.UpdateQueue interface
func (q *KafkaQueue) Pop(ctx context.Context) ([]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, q.pollTimeout)
	defer cancel()

	msg, err := q.reader.FetchMessage(fetchCtx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to fetch update from Kafka: %w", err)
	}

	if err := q.reader.CommitMessages(ctx, msg); err != nil {
		q.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to commit Kafka message")
	}

	return msg.Value, nil
}

// Close closes the producer and the reader
func (q *KafkaQueue) Close() error {
	var errs []error
	if err := q.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close Kafka producer: %w", err))
	}
	if err := q.reader.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close Kafka reader: %w", err))
	}
	return errors.Join(errs...)
}
