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

func (r *Router) addPredictionRoutes() {
	r.addPredictSingleRoute()
	r.addPredictBatchRoute()
}

func (r *Router) addAlertRoutes() {
	r.addGetAlertsRoute()
	r.addGetAlertSummaryRoute()
	r.addGetAlertRoute()
	r.addConfirmAlertRoute()
	r.addRejectAlertRoute()
}

func (r *Router) addMeterRoutes() {
	r.addAddMeterRoute()
	r.addGetMetersRoute()
	r.addGetMeterRoute()
}

func (r *Router) addModelRoutes() {
	r.addModelInfoRoute()
	r.addHealthRoute()
}

// @Summary      Score one meter
// @Description  Runs feature engineering and theft inference over the submitted consumption series.
// @Tags         Prediction
// @Param        Body  body  dto.PredictionRequest  true  "Meter id and daily consumption readings."
// @Success      200   {object}  dto.PredictionResponse
// @Failure      400   {object}  error  "{"message":"Error message"}"
// @Failure      500   {object}  error  "{"message":"Error message"}"
// @Router       /api/v1/predict/single [post]
func (r *Router) addPredictSingleRoute() {
	r.echo.POST("/api/v1/predict/single", func(c echo.Context) error {
		if hErr := r.predictSingle(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

// @Summary      Score a batch of meters
// @Description  Groups flat readings per meter and scores the meters concurrently.
// @Tags         Prediction
// @Param        Body  body  dto.BatchPredictionRequest  true  "Flat list of meter readings."
// @Success      200   {object}  dto.BatchPredictionResponse
// @Failure      400   {object}  error  "{"message":"Error message"}"
// @Router       /api/v1/predict/batch [post]
func (r *Router) addPredictBatchRoute() {
	r.echo.POST("/api/v1/predict/batch", func(c echo.Context) error {
		if hErr := r.predictBatch(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

func (r *Router) addGetAlertsRoute() {
	r.echo.GET("/api/v1/alerts", func(c echo.Context) error {
		if hErr := r.getAlerts(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

func (r *Router) addGetAlertSummaryRoute() {
	r.echo.GET("/api/v1/alerts/summary", func(c echo.Context) error {
		if hErr := r.getAlertSummary(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

func (r *Router) addGetAlertRoute() {
	r.echo.GET("/api/v1/alerts/:alertId", func(c echo.Context) error {
		if hErr := r.getAlert(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

// @Summary      Confirm an alert
// @Description  Marks a pending alert as confirmed theft. Terminal alerts cannot be re-dispositioned.
// @Tags         Alerts
// @Param        alertId  path  string  true  "Alert id."
// @Success      200  {object}  dto.Alert
// @Failure      404  {object}  error  "{"message":"Error message"}"
// @Failure      409  {object}  error  "{"message":"Error message"}"
// @Router       /api/v1/alerts/{alertId}/confirm [post]
func (r *Router) addConfirmAlertRoute() {
	r.echo.POST("/api/v1/alerts/:alertId/confirm", func(c echo.Context) error {
		if hErr := r.confirmAlert(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

func (r *Router) addRejectAlertRoute() {
	r.echo.POST("/api/v1/alerts/:alertId/reject", func(c echo.Context) error {
		if hErr := r.rejectAlert(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

func (r *Router) addAddMeterRoute() {
	r.echo.POST("/api/v1/meters", func(c echo.Context) error {
		if hErr := r.addMeter(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

func (r *Router) addGetMetersRoute() {
	r.echo.GET("/api/v1/meters", func(c echo.Context) error {
		if hErr := r.getMeters(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

func (r *Router) addGetMeterRoute() {
	r.echo.GET("/api/v1/meters/:meterId", func(c echo.Context) error {
		if hErr := r.getMeter(c); hErr != nil {
			return hErr
		}
		return nil
	})
}

func (r *Router) addModelInfoRoute() {
	r.echo.GET("/api/v1/model/info", func(c echo.Context) error {
		return c.JSON(http.StatusOK, r.artifact.Info())
	})
}

func (r *Router) addHealthRoute() {
	r.echo.GET("/health", func(c echo.Context) error {
		return r.health(c)
	})
}
