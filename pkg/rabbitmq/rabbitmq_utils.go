package rabbitmq

import (
	"fmt"
	"math"
	"time"

	"idproof/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// WorkerService is a long-running background service started by the
// application after the broker registries are initialized.
type WorkerService interface {
	GetServiceName() string
	StartService()
}

func ConnectToRabbitmq(user, password, host string) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	maxRetries := 7
	waitTime := 1 * time.Second

	queueLogger := logger.Default()

	for i := 0; i < maxRetries; i++ {
		connectionString := fmt.Sprintf("amqp://%s:%s@%s:5672/", user, password, host)
		conn, err = amqp.Dial(connectionString)
		if err == nil {
			return conn, nil
		}
		queueLogger.Warnf("Attempt %d failed: %v. Retrying in %v...", i+1, err, waitTime)
		time.Sleep(waitTime)
		waitTime = time.Duration(math.Pow(2, float64(i+1))) * time.Second
	}
	return nil, err
}
