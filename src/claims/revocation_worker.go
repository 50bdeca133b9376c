package claims

import (
	"encoding/json"

	"idproof/pkg/logger"
	"idproof/pkg/rabbitmq"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	revocationWorkerName = "DocumentRevocationConsumerWorker"

	// RevocationConsumerAlias names the consumer entry in config.json.
	RevocationConsumerAlias rabbitmq.ConsumerAlias = "DocumentRevokedConsumer"
)

// DocumentRevokedEvent is published by the document-verification collaborator
// when a source document is invalidated (reported lost, fraud flagged).
type DocumentRevokedEvent struct {
	UserId     string `json:"user_id"`
	DocumentId string `json:"document_id"`
	Reason     string `json:"reason"`
}

// RevocationWorker consumes revocation events and drops the commitments of
// the revoked document, so no further proofs can be verified against it.
type RevocationWorker struct {
	repository Repository
}

func NewRevocationWorker(repo Repository) rabbitmq.WorkerService {
	return &RevocationWorker{repository: repo}
}

func (w *RevocationWorker) GetServiceName() string {
	return revocationWorkerName
}

func (w *RevocationWorker) StartService() {
	consumer := rabbitmq.GetConsumer(RevocationConsumerAlias)
	if consumer == nil {
		logger.Default().Warnf("No consumer configured for alias %s, revocations will not be processed", RevocationConsumerAlias)
		return
	}

	// StartConsuming blocks on the delivery channel.
	go consumer.StartConsuming(w.HandleDelivery)
}

func (w *RevocationWorker) HandleDelivery(delivery amqp.Delivery) {
	workerLogger := logger.Default()

	var event DocumentRevokedEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		workerLogger.Error(err, "Discarding malformed revocation event")
		return
	}
	if event.UserId == "" || event.DocumentId == "" {
		workerLogger.Warn("Discarding revocation event without owner or document")
		return
	}

	deleted, err := w.repository.DeleteByDocument(event.UserId, event.DocumentId)
	if err != nil {
		workerLogger.Errorf(err, "Could not revoke commitments for document %s", event.DocumentId)
		return
	}
	workerLogger.Infof("Revoked %d commitments for document %s (%s)", deleted, event.DocumentId, event.Reason)
}
