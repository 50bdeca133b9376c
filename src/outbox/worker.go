package outbox

import (
	"idproof/pkg/logger"
	"idproof/pkg/rabbitmq"

	"github.com/robfig/cron"
)

const outboxWorkerName = "ProofVerifiedOutboxWorker"

// Worker drains parked proof-verified events to the broker.
type Worker struct {
	publisher  rabbitmq.IRabbitmqPublisher
	repository Repository
	cron       *cron.Cron
}

func NewWorker(repo Repository) rabbitmq.WorkerService {
	return &Worker{
		publisher:  rabbitmq.GetPublisher("ProofVerifiedPublisher"),
		repository: repo,
		cron:       cron.New(),
	}
}

func (w *Worker) GetServiceName() string {
	return outboxWorkerName
}

func (w *Worker) StartService() {
	err := w.cron.AddFunc("@every 1m", func() { w.publishPending() })
	if err != nil {
		logger.Default().Errorf(err, "Could not add function to %s", outboxWorkerName)
	}

	w.cron.Start()
}

func (w *Worker) publishPending() {
	outboxLogger := logger.Default()

	events, err := w.repository.GetPending()
	if err != nil {
		outboxLogger.Error(err, "Could not read outbox events from database")
		return
	}

	for _, event := range events {
		if err := w.publisher.Publish(event.MapToProofVerifiedEvent()); err != nil {
			outboxLogger.Error(err, "Can't publish to queue")
			if err := w.repository.BumpRetry(event); err != nil {
				outboxLogger.Error(err, "Could not bump outbox retry")
			}
			continue
		}
		if err := w.repository.MarkPublished(event.EventId); err != nil {
			outboxLogger.Error(err, "Could not delete published outbox event")
		}
	}
}
