package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/eth"
	"github.com/HumansWindow/minting-service/models"
	log "github.com/sirupsen/logrus"
)

func main() {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if len(os.Args) < 2 {
		log.Fatal("Please provide config file as parameter")
	}
	absConfigPath, _ := filepath.Abs(os.Args[1])

	var absEnvPath string
	if len(os.Args) > 2 {
		absEnvPath, _ = filepath.Abs(os.Args[2])
	}

	app.InitConfig(absConfigPath, absEnvPath)
	app.InitLogger()
	app.InitDB()

	client, err := eth.NewClient()
	if err != nil {
		log.Fatal("[MAIN] Error connecting to ethereum: ", err)
	}
	client.ValidateNetwork()

	healthRunner := app.NewHealthCheck()

	serviceHealthMap := map[string]models.ServiceHealth{}
	if app.Config.HealthCheck.ReadLastHealth {
		lastHealth, err := healthRunner.FindLastHealth()
		if err != nil {
			log.Warn("[MAIN] Error reading last health: ", err)
		}
		for _, serviceHealth := range lastHealth.ServiceHealths {
			serviceHealthMap[serviceHealth.Name] = serviceHealth
		}
	}

	factories := GetServiceFactories()

	var wg sync.WaitGroup
	wg.Add(len(factories) + 1)

	var services []app.Service
	for serviceName, factory := range factories {
		services = append(services, factory(&wg, serviceHealthMap[serviceName]))
	}

	healthService := app.NewRunnerService(
		app.HealthCheckName,
		healthRunner,
		&wg,
		time.Duration(app.Config.HealthCheck.IntervalMillis)*time.Millisecond,
	)
	services = append(services, healthService)

	healthRunner.SetServices(services)

	for _, service := range services {
		go service.Start()
	}

	// Gracefully shut down server
	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[MAIN] Gracefully shutting down server")

	for _, service := range services {
		service.Stop()
	}
	wg.Wait()

	app.DB.Disconnect()
	log.Info("[MAIN] Server gracefully stopped")
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[MAIN] Got signal: ", sig)
	done <- true
}
