/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/labstack/echo/v4"

	"gridhawk/internal/alerts"
	"gridhawk/internal/config"
	"gridhawk/internal/features"
	"gridhawk/internal/ml"
	"gridhawk/internal/publisher"
	"gridhawk/internal/registry"
	"gridhawk/internal/router"
	"gridhawk/internal/scoring"
	"gridhawk/internal/telemetry"
	appRedis "gridhawk/pkg/db/redis"
)

const serviceName = "gridhawk-scoring"

func main() {
	configPath := flag.String("config", "res/configuration.toml", "path to the service configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	lc := logger.NewClient(serviceName, cfg.Service.LogLevel)
	lc.Infof("Starting %s", serviceName)

	// no model, no service
	artifact, hErr := ml.LoadArtifact(cfg.Model.ArtifactPath)
	if hErr != nil {
		lc.Errorf("Fatal: %v", hErr)
		os.Exit(1)
	}
	lc.Infof("Loaded model artifact: type=%s version=%s features=%d",
		artifact.Model.Type, artifact.Metadata.ModelVersion, len(artifact.FeatureColumns))

	dbClient := appRedis.NewDBClient(cfg.DatabaseConfig())
	tel := telemetry.NewTelemetry(lc, dbClient)

	var meterRegistry registry.MeterRegistry
	gdb, err := registry.GetDbConnection(cfg.PostgresDSN(), lc)
	if err != nil {
		lc.Errorf("Meter registry unavailable, alerts will not be enriched: %v", err)
	} else {
		registryService, rErr := registry.NewRegistryService(gdb, lc)
		if rErr != nil {
			lc.Errorf("Meter registry unavailable, alerts will not be enriched: %v", rErr)
		} else {
			meterRegistry = registryService
		}
	}

	var alertPublisher publisher.AlertPublisher = publisher.NoopPublisher{}
	if cfg.Mqtt.Enabled {
		mqttPublisher, pErr := publisher.NewMqttPublisher(cfg.Mqtt, lc)
		if pErr != nil {
			lc.Errorf("MQTT export disabled: %v", pErr)
		} else {
			alertPublisher = mqttPublisher
			defer mqttPublisher.Close()
		}
	}

	engine := features.NewEngine(lc)
	scorer := ml.NewScorer(artifact, lc)
	alertService := alerts.NewAlertService(dbClient, meterRegistry, alertPublisher, tel, lc)
	scoringService := scoring.NewScoringService(
		engine, scorer, alertService, tel, lc,
		time.Duration(cfg.Cache.PredictionTTLSeconds)*time.Second,
		cfg.Service.BatchWorkers,
	)

	e := echo.New()
	e.HideBanner = true
	router.NewRouter(e, scoringService, alertService, meterRegistry, artifact, tel, lc).AddRoutes()

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.Port)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			lc.Errorf("Server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lc.Infof("Shutting down %s", serviceName)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		lc.Errorf("Forced shutdown: %v", err)
	}
}
