/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

import "time"

const DateLayout = "2006-01-02"

// ConsumptionPoint is the wire form of one daily meter reading.
type ConsumptionPoint struct {
	Date        string  `json:"date"        validate:"required,datetime=2006-01-02"`
	Consumption float64 `json:"consumption" validate:"gte=0"`
}

// ConsumptionRecord is the parsed form used by the feature engine.
type ConsumptionRecord struct {
	MeterID     string
	Date        time.Time
	Consumption float64
}

// ConsumptionSeries is one meter's readings, sorted ascending by date.
// It is owned by the caller for the duration of a scoring request and is
// never persisted by the scoring core.
type ConsumptionSeries []ConsumptionRecord

func (s ConsumptionSeries) LatestDate() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

type PredictionRequest struct {
	MeterID            string             `json:"meter_id"            validate:"required"`
	ConsumptionData    []ConsumptionPoint `json:"consumption_data"    validate:"required,min=1,dive"`
	IncludeExplanation bool               `json:"include_explanation"`
}

type BatchReading struct {
	MeterID     string  `json:"meter_id"    validate:"required"`
	Date        string  `json:"date"        validate:"required,datetime=2006-01-02"`
	Consumption float64 `json:"consumption" validate:"gte=0"`
}

type BatchPredictionRequest struct {
	Data []BatchReading `json:"data" validate:"required,min=1,dive"`
}
