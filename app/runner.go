package app

import (
	"sync"
	"time"

	"github.com/HumansWindow/minting-service/models"
	log "github.com/sirupsen/logrus"
)

// Runner is the unit of work driven by a RunnerService on a fixed interval.
type Runner interface {
	Run()
	Status() models.RunnerStatus
}

type RunnerService struct {
	name     string
	runner   Runner
	interval time.Duration
	stop     chan bool
	wg       *sync.WaitGroup

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func NewRunnerService(name string, runner Runner, wg *sync.WaitGroup, interval time.Duration) Service {
	if name == "" || runner == nil || wg == nil || interval <= 0 {
		log.Error("[RUNNER] Invalid parameters for runner service")
		return nil
	}

	return &RunnerService{
		name:     name,
		runner:   runner,
		interval: interval,
		stop:     make(chan bool, 1),
		wg:       wg,
	}
}

func (x *RunnerService) Start() {
	log.Infof("[%s] Service started", x.name)
	stop := false
	for !stop {
		log.Debugf("[%s] Run started", x.name)

		x.runner.Run()

		x.UpdateHealth()

		log.Debugf("[%s] Run complete, sleeping for %s", x.name, x.interval)

		select {
		case <-x.stop:
			stop = true
			log.Infof("[%s] Service stopped", x.name)
		case <-time.After(x.interval):
		}
	}
	x.wg.Done()
}

func (x *RunnerService) Stop() {
	log.Debugf("[%s] Stopping service", x.name)
	select {
	case x.stop <- true:
	default:
	}
}

func (x *RunnerService) UpdateHealth() {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()

	lastSyncTime := time.Now()
	status := x.runner.Status()

	x.health = models.ServiceHealth{
		Name:           x.name,
		Healthy:        true,
		EthBlockNumber: status.EthBlockNumber,
		QueueDepth:     status.QueueDepth,
		LastSyncTime:   lastSyncTime,
		NextSyncTime:   lastSyncTime.Add(x.interval),
	}
}

func (x *RunnerService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	return x.health
}
