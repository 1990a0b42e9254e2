package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/config"
	"dispatch/pkg/logger"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"

	"github.com/IBM/sarama"
)

const (
	producerTimeout     = 5 * time.Second
	sendInitialInterval = 100 * time.Millisecond
	sendMaxInterval     = 1 * time.Second
	sendMaxElapsedTime  = 3 * time.Second
	sendRandomization   = 0.3
	sendMultiplier      = 2
)

// Producer синхронный продюсер: сообщение считается отправленным,
// когда брокер подтвердил запись всеми репликами.
type Producer struct {
	log      logger.Logger
	producer sarama.SyncProducer
	retrier  retrierconfig.Retrier
}

func NewProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (*Producer, error) {
	saramaConfig, err := NewSaramaConfig(
		cfg.Sarama.Version,
		cfg.Sarama.ConsumerOffsetsAutocommit,
		sarama.OffsetNewest,
		sarama.NewBalanceStrategyRoundRobin(),
	)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Timeout = producerTimeout
	// один ключ (топик заказа) всегда в одной партиции, порядок событий сохраняется
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	brokers := cfg.BrokerList()
	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("topic", cfg.EventsTopic),
	)

	if err := pingKafka(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	return &Producer{
		log:      kafkaLog,
		producer: producer,
		retrier: backoff_adapter.New(retrierconfig.Config{
			InitialInterval: sendInitialInterval,
			MaxInterval:     sendMaxInterval,
			MaxElapsedTime:  sendMaxElapsedTime,
			Randomization:   sendRandomization,
			Multiplier:      sendMultiplier,
			ShouldRetry:     isRetriable,
		}),
	}, nil
}

func (p *Producer) SendMessage(ctx context.Context, topic, key string, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	var (
		partition int32
		offset    int64
	)
	err := p.retrier.ExecuteWithContext(ctx, func(context.Context) error {
		var sendErr error
		partition, offset, sendErr = p.producer.SendMessage(msg)
		return sendErr
	})
	if err != nil {
		return fmt.Errorf("send message to %s: %w", topic, err)
	}

	p.log.Info("message stored",
		logger.NewField("key", key),
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

func isRetriable(err error) bool {
	return !errors.Is(err, sarama.ErrClosedClient) &&
		!errors.Is(err, sarama.ErrShuttingDown) &&
		!errors.Is(err, sarama.ErrMessageSizeTooLarge) &&
		!errors.Is(err, sarama.ErrInvalidMessage)
}
