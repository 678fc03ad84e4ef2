/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status       string  `json:"status"`
	ModelLoaded  bool    `json:"model_loaded"`
	ModelVersion string  `json:"model_version,omitempty"`
	LatencyP50Ms float64 `json:"latency_p50_ms"`
	LatencyP99Ms float64 `json:"latency_p99_ms"`
}

func (r *Router) health(c echo.Context) error {
	response := healthResponse{
		Status:      "ok",
		ModelLoaded: r.artifact != nil,
	}
	if r.artifact != nil {
		response.ModelVersion = r.artifact.Metadata.ModelVersion
	}
	if r.telemetry != nil {
		response.LatencyP50Ms = r.telemetry.LatencyQuantile(0.5)
		response.LatencyP99Ms = r.telemetry.LatencyQuantile(0.99)
	}
	return c.JSON(http.StatusOK, response)
}
