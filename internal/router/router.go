/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"

	"gridhawk/internal/alerts"
	"gridhawk/internal/ml"
	"gridhawk/internal/registry"
	"gridhawk/internal/scoring"
	"gridhawk/internal/telemetry"
)

const CorrelationHeader = "X-Correlation-ID"

type Router struct {
	echo           *echo.Echo
	scoringService *scoring.ScoringService
	alertService   *alerts.AlertService
	meterRegistry  registry.MeterRegistry
	artifact       *ml.Artifact
	telemetry      *telemetry.Telemetry
	validate       *validator.Validate
	lc             logger.LoggingClient
}

func NewRouter(
	e *echo.Echo,
	scoringService *scoring.ScoringService,
	alertService *alerts.AlertService,
	meterRegistry registry.MeterRegistry,
	artifact *ml.Artifact,
	tel *telemetry.Telemetry,
	lc logger.LoggingClient,
) *Router {
	return &Router{
		echo:           e,
		scoringService: scoringService,
		alertService:   alertService,
		meterRegistry:  meterRegistry,
		artifact:       artifact,
		telemetry:      tel,
		validate:       validator.New(),
		lc:             lc,
	}
}

func (r *Router) AddRoutes() {
	r.echo.Use(correlationMiddleware)
	r.addPredictionRoutes()
	r.addAlertRoutes()
	r.addMeterRoutes()
	r.addModelRoutes()
}

// correlationMiddleware tags every request so log lines can be tied back to
// the calling client.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationId := c.Request().Header.Get(CorrelationHeader)
		if correlationId == "" {
			correlationId = shortuuid.New()
		}
		c.Response().Header().Set(CorrelationHeader, correlationId)
		return next(c)
	}
}
