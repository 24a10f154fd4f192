package app

import (
	"sync"
	"time"

	"github.com/HumansWindow/minting-service/models"
)

type Service interface {
	Start()
	Health() models.ServiceHealth
	Stop()
}

// EmptyService stands in for a disabled service so the rest of the engine
// can treat the service set uniformly.
type EmptyService struct {
	wg *sync.WaitGroup
}

const EmptyServiceName = "empty"

func (e *EmptyService) Start() {}

func (e *EmptyService) Stop() {
	e.wg.Done()
}

func (e *EmptyService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:         EmptyServiceName,
		Healthy:      true,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now(),
	}
}

func NewEmptyService(wg *sync.WaitGroup) *EmptyService {
	return &EmptyService{
		wg: wg,
	}
}
