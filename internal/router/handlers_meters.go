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
)

func (r *Router) addMeter(c echo.Context) *echo.HTTPError {
	if r.meterRegistry == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Meter registry is not configured")
	}

	var meter dto.Meter
	err := json.NewDecoder(c.Request().Body).Decode(&meter)
	if err != nil {
		r.lc.Errorf("Failed to add meter while decoding input payload: %v", err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			"Failed to add meter while decoding input payload",
		)
	}

	err = r.validate.Struct(meter)
	if err != nil {
		r.lc.Errorf("Failed to add meter while validating input payload: %v", err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			"Failed to add meter while validating input payload",
		)
	}

	created, hErr := r.meterRegistry.AddMeter(meter)
	if hErr != nil {
		r.lc.Errorf("Failed to add meter %s: %v", meter.MeterID, hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusCreated, created)
	return nil
}

func (r *Router) getMeters(c echo.Context) *echo.HTTPError {
	if r.meterRegistry == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Meter registry is not configured")
	}

	meters, hErr := r.meterRegistry.GetMeters(
		c.QueryParam("area"),
		cast.ToInt(c.QueryParam("limit")),
		cast.ToInt(c.QueryParam("offset")),
	)
	if hErr != nil {
		r.lc.Errorf("Failed to list meters: %v", hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusOK, meters)
	return nil
}

func (r *Router) getMeter(c echo.Context) *echo.HTTPError {
	if r.meterRegistry == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Meter registry is not configured")
	}

	meterId := c.Param("meterId")
	if meterId == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Required parameter 'meterId' is missing")
	}

	meter, hErr := r.meterRegistry.GetMeter(meterId)
	if hErr != nil {
		r.lc.Errorf("Failed to get meter %s: %v", meterId, hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusOK, meter)
	return nil
}
