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

	"gridhawk/common/dto"
)

func (r *Router) predictSingle(c echo.Context) *echo.HTTPError {
	var request dto.PredictionRequest
	err := json.NewDecoder(c.Request().Body).Decode(&request)
	if err != nil {
		r.lc.Errorf("Failed to score meter while decoding input payload: %v", err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			"Failed to score meter while decoding input payload",
		)
	}

	// Perform validation based on the PredictionRequest struct tags
	err = r.validate.Struct(request)
	if err != nil {
		r.lc.Errorf("Failed to score meter while validating input payload: %v", err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			"Failed to score meter while validating input payload",
		)
	}

	response, hErr := r.scoringService.Predict(c.Request().Context(), request)
	if hErr != nil {
		r.lc.Errorf("Failed to score meter %s: %v", request.MeterID, hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusOK, response)
	return nil
}

func (r *Router) predictBatch(c echo.Context) *echo.HTTPError {
	var request dto.BatchPredictionRequest
	err := json.NewDecoder(c.Request().Body).Decode(&request)
	if err != nil {
		r.lc.Errorf("Failed to score batch while decoding input payload: %v", err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			"Failed to score batch while decoding input payload",
		)
	}

	err = r.validate.Struct(request)
	if err != nil {
		r.lc.Errorf("Failed to score batch while validating input payload: %v", err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			"Failed to score batch while validating input payload",
		)
	}

	response, hErr := r.scoringService.PredictBatch(c.Request().Context(), request)
	if hErr != nil {
		r.lc.Errorf("Failed to score batch: %v", hErr)
		return hErr.ConvertToHTTPError()
	}

	_ = c.JSON(http.StatusOK, response)
	return nil
}
