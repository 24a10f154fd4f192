package main

import (
	"sync"

	"github.com/HumansWindow/minting-service/api"
	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/models"
	"github.com/HumansWindow/minting-service/settler"
)

// ServiceFactory builds one engine service. The last health recorded for the
// service is passed along so a restarted instance starts from what the
// previous one reported.
type ServiceFactory func(wg *sync.WaitGroup, lastHealth models.ServiceHealth) app.Service

func GetServiceFactories() map[string]ServiceFactory {
	return map[string]ServiceFactory{
		settler.BatchSchedulerName: settler.NewBatchScheduler,
		settler.ConfirmerName:      settler.NewConfirmer,
		api.APIServiceName:         api.NewAPIService,
	}
}
