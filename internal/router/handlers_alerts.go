/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
)

func (r *Router) getAlerts(c echo.Context) *echo.HTTPError {
	filter := dto.AlertFilter{
		Status:    dto.AlertStatus(c.QueryParam("status")),
		RiskLevel: dto.RiskLevel(c.QueryParam("risk_level")),
		Area:      c.QueryParam("area"),
		Days:      cast.ToInt(c.QueryParam("days")),
		Limit:     cast.ToInt(c.QueryParam("limit")),
		Offset:    cast.ToInt(c.QueryParam("offset")),
	}

	alerts, hErr := r.alertService.GetAlerts(filter)
	if hErr != nil {
		r.lc.Errorf("Failed to list alerts: %v", hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusOK, alerts)
	return nil
}

func (r *Router) getAlertSummary(c echo.Context) *echo.HTTPError {
	summary, hErr := r.alertService.GetSummary()
	if hErr != nil {
		r.lc.Errorf("Failed to get alert summary: %v", hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusOK, summary)
	return nil
}

func (r *Router) getAlert(c echo.Context) *echo.HTTPError {
	alertId := c.Param("alertId")
	if alertId == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Required parameter 'alertId' is missing")
	}

	alert, hErr := r.alertService.GetAlert(alertId)
	if hErr != nil {
		r.lc.Errorf("Failed to get alert %s: %v", alertId, hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusOK, alert)
	return nil
}

func (r *Router) confirmAlert(c echo.Context) *echo.HTTPError {
	return r.transitionAlert(c, true)
}

func (r *Router) rejectAlert(c echo.Context) *echo.HTTPError {
	return r.transitionAlert(c, false)
}

func (r *Router) transitionAlert(c echo.Context, confirm bool) *echo.HTTPError {
	alertId := c.Param("alertId")
	if alertId == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Required parameter 'alertId' is missing")
	}

	// notes body is optional
	var request dto.TransitionRequest
	if c.Request().Body != nil {
		_ = json.NewDecoder(c.Request().Body).Decode(&request)
	}

	var alert dto.Alert
	var hErr gridErrors.GridError
	if confirm {
		alert, hErr = r.alertService.Confirm(alertId, request.Notes)
	} else {
		alert, hErr = r.alertService.Reject(alertId, request.Notes)
	}
	if hErr != nil {
		r.lc.Errorf("Failed to disposition alert %s: %v", alertId, hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusOK, alert)
	return nil
}
