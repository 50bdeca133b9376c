package rabbitmq

import (
	"sync"

	"idproof/pkg/logger"
	"idproof/pkg/utilities"

	amqp "github.com/rabbitmq/amqp091-go"
)

type ConsumerAlias string

var (
	consumerRegistry    map[ConsumerAlias]IRabbitmqConsumer
	onceConsumer        sync.Once
	initializedConsumer bool
)

// GetConsumer returns the consumer bound to the alias, or nil when the
// config declares no consumer under that name. Callers decide whether a
// missing consumer is fatal.
func GetConsumer(alias ConsumerAlias) IRabbitmqConsumer {
	if !initializedConsumer {
		panic("Consumer registry not initialized: call InitializeConsumerRegistry() first")
	}
	consumer, exists := consumerRegistry[alias]
	if !exists {
		return nil
	}
	return consumer
}

func InitializeConsumerRegistry(conn *amqp.Connection, consumerConfig []RabbitmqConsumerConfig) {
	onceConsumer.Do(func() {
		consumerRegistry = make(map[ConsumerAlias]IRabbitmqConsumer)

		for _, consumer := range consumerConfig {
			channel, err := conn.Channel()
			if err != nil {
				logger.Default().Panicf(err, "Could not obtain channel for consumer %s", consumer.ConsumerAlias)
			}

			consumerRegistry[consumer.ConsumerAlias] = NewConsumer(
				channel,
				consumer.QueueName,
				consumer.ConsumerTag,
			)
		}

		initializedConsumer = true
	})
}

type IRabbitmqConsumer interface {
	StartConsuming(func(amqp.Delivery))
}

type RabbitmqConsumer struct {
	Channel     *amqp.Channel
	QueueName   string
	ConsumerTag string
}

func NewConsumer(ch *amqp.Channel, queueName, consumerTag string) *RabbitmqConsumer {
	return &RabbitmqConsumer{
		Channel:     ch,
		QueueName:   queueName,
		ConsumerTag: consumerTag,
	}
}

// StartConsuming blocks on the delivery channel until the broker closes it,
// dispatching each message to the handler.
func (rc *RabbitmqConsumer) StartConsuming(messageHandler func(amqp.Delivery)) {
	msgs, err := rc.Channel.Consume(
		rc.QueueName,
		rc.ConsumerTag,
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	utilities.FailOnError(err, "Failed to register a consumer")

	consumerLogger := logger.Default()
	consumerLogger.Infof("Waiting for messages in queue: %s", rc.QueueName)

	for delivery := range msgs {
		rc.dispatch(messageHandler, delivery)
	}
	consumerLogger.Warnf("Delivery channel closed for queue: %s", rc.QueueName)
}

// dispatch isolates handler panics so one poison message cannot stop the
// queue loop.
func (rc *RabbitmqConsumer) dispatch(messageHandler func(amqp.Delivery), delivery amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			logger.Default().Errorf(nil, "[%s] Recovered from handler panic for consumer %s: %v",
				rc.QueueName, rc.ConsumerTag, r)
		}
	}()

	messageHandler(delivery)
}
