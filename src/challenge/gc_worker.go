package challenge

import (
	"time"

	"idproof/pkg/logger"
	"idproof/pkg/rabbitmq"

	"github.com/robfig/cron"
)

const gcWorkerName = "ChallengeGcCronWorker"

// GcWorker periodically removes challenges that expired more than one TTL
// ago. The grace window keeps recently expired rows around so consume
// attempts can still be diagnosed as expired rather than not-found.
type GcWorker struct {
	repository Repository
	cron       *cron.Cron
}

func NewGcWorker(repo Repository) rabbitmq.WorkerService {
	return &GcWorker{
		repository: repo,
		cron:       cron.New(),
	}
}

func (w *GcWorker) GetServiceName() string {
	return gcWorkerName
}

func (w *GcWorker) StartService() {
	err := w.cron.AddFunc("@every 1m", func() { w.sweep() })
	if err != nil {
		logger.Default().Errorf(err, "Could not add function to %s", gcWorkerName)
	}

	w.cron.Start()
}

func (w *GcWorker) sweep() {
	gcLogger := logger.Default()

	deleted, err := w.repository.DeleteExpired(time.Now().UTC().Add(-DefaultTTL))
	if err != nil {
		gcLogger.Error(err, "Could not delete expired challenges")
		return
	}
	if deleted > 0 {
		gcLogger.Infof("Deleted %d expired challenges", deleted)
	}
}
