/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package features

import (
	"testing"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
)

func testEngine() *Engine {
	return NewEngine(logger.NewMockClient())
}

func TestCompute_BasicSeries(t *testing.T) {
	engine := testEngine()
	points := []dto.ConsumptionPoint{
		{Date: "2024-01-01", Consumption: 1500},
		{Date: "2024-01-02", Consumption: 1450},
		{Date: "2024-01-03", Consumption: 1600},
	}

	fs, hErr := engine.Compute("MTR-001", points)
	require.Nil(t, hErr)

	assert.Equal(t, "MTR-001", fs.MeterID)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), fs.AsOfDate)

	assert.Equal(t, 1600.0, fs.Values["consumption"])
	assert.Equal(t, 1450.0, fs.Values["consumption_lag1"])
	assert.Equal(t, 0.0, fs.Values["consumption_lag7"])
	assert.InDelta(t, 1516.6667, fs.Values["consumption_7d_mean"], 0.001)
	assert.InDelta(t, 62.3610, fs.Values["consumption_7d_std"], 0.001)
	assert.Equal(t, 1600.0, fs.Values["consumption_7d_max"])
	assert.Equal(t, 1450.0, fs.Values["consumption_7d_min"])
	assert.InDelta(t, 1516.6667, fs.Values["consumption_30d_mean"], 0.001)
}

func TestCompute_CalendarFeatures(t *testing.T) {
	engine := testEngine()
	// 2024-01-03 is a Wednesday
	fs, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "2024-01-03", Consumption: 100},
	})
	require.Nil(t, hErr)

	assert.Equal(t, 2024.0, fs.Values["year"])
	assert.Equal(t, 1.0, fs.Values["month"])
	assert.Equal(t, 2.0, fs.Values["day_of_week"])
	assert.Equal(t, 3.0, fs.Values["day_of_year"])
	assert.Equal(t, 0.0, fs.Values["is_weekend"])
	assert.Equal(t, 1.0, fs.Values["season_winter"])
	assert.Equal(t, 0.0, fs.Values["season_summer"])
}

func TestCompute_WeekendAndSeason(t *testing.T) {
	engine := testEngine()
	// 2024-07-06 is a Saturday
	fs, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "2024-07-06", Consumption: 100},
	})
	require.Nil(t, hErr)

	assert.Equal(t, 5.0, fs.Values["day_of_week"])
	assert.Equal(t, 1.0, fs.Values["is_weekend"])
	assert.Equal(t, 1.0, fs.Values["season_summer"])
	assert.Equal(t, 0.0, fs.Values["season_winter"])
}

func TestCompute_LagRequiresExactDate(t *testing.T) {
	engine := testEngine()
	fs, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "2024-01-01", Consumption: 1500},
		{Date: "2024-01-03", Consumption: 1600},
	})
	require.Nil(t, hErr)

	// no reading on Jan 2, lag1 must not fall back to Jan 1
	assert.Equal(t, 0.0, fs.Values["consumption_lag1"])
}

func TestCompute_WindowIsDateBounded(t *testing.T) {
	engine := testEngine()
	fs, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "2024-01-01", Consumption: 9000},
		{Date: "2024-01-20", Consumption: 100},
		{Date: "2024-01-21", Consumption: 200},
	})
	require.Nil(t, hErr)

	// Jan 1 is outside the 7 day window ending Jan 21
	assert.InDelta(t, 150.0, fs.Values["consumption_7d_mean"], 0.001)
	// but inside the 30 day window
	assert.InDelta(t, 3100.0, fs.Values["consumption_30d_mean"], 0.001)
}

func TestCompute_MeterStats(t *testing.T) {
	engine := testEngine()
	fs, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "2024-01-01", Consumption: 1450},
		{Date: "2024-01-02", Consumption: 1500},
		{Date: "2024-01-03", Consumption: 1600},
	})
	require.Nil(t, hErr)

	assert.InDelta(t, 1516.6667, fs.Values["meter_mean"], 0.001)
	assert.Equal(t, 1450.0, fs.Values["meter_min"])
	assert.Equal(t, 1600.0, fs.Values["meter_max"])
	assert.Equal(t, 1500.0, fs.Values["meter_median"])
	assert.Equal(t, 1475.0, fs.Values["meter_q1"])
	assert.Equal(t, 1550.0, fs.Values["meter_q3"])
	assert.Equal(t, 150.0, fs.Values["meter_range"])
	assert.Equal(t, 75.0, fs.Values["meter_iqr"])
	assert.InDelta(t, fs.Values["meter_std"]/fs.Values["meter_mean"], fs.Values["meter_cv"], 1e-9)
}

func TestCompute_DuplicateDatesLastWins(t *testing.T) {
	engine := testEngine()
	fs, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "2024-01-01", Consumption: 100},
		{Date: "2024-01-01", Consumption: 250},
	})
	require.Nil(t, hErr)
	assert.Equal(t, 250.0, fs.Values["consumption"])
	assert.Equal(t, 250.0, fs.Values["meter_mean"])
}

func TestCompute_EmptySeries(t *testing.T) {
	engine := testEngine()
	_, hErr := engine.Compute("MTR-001", nil)
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeValidation))
}

func TestCompute_InvalidDate(t *testing.T) {
	engine := testEngine()
	_, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "01/02/2024", Consumption: 100},
	})
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeValidation))
}

func TestCompute_NegativeConsumption(t *testing.T) {
	engine := testEngine()
	_, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "2024-01-01", Consumption: -5},
	})
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeValidation))
}

func TestCompute_SingleReading(t *testing.T) {
	engine := testEngine()
	fs, hErr := engine.Compute("MTR-001", []dto.ConsumptionPoint{
		{Date: "2024-01-01", Consumption: 100},
	})
	require.Nil(t, hErr)

	assert.Equal(t, 100.0, fs.Values["consumption"])
	assert.Equal(t, 0.0, fs.Values["consumption_7d_std"])
	assert.Equal(t, 0.0, fs.Values["meter_skew"])
	assert.Equal(t, 0.0, fs.Values["meter_kurt"])
}
