/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package features

import (
	"fmt"
	"sort"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
)

// FeatureSet is the named feature values computed for one meter as of the
// latest reading in its series. The scorer reconciles it against the model
// artifact's column order.
type FeatureSet struct {
	MeterID  string
	AsOfDate time.Time
	Values   map[string]float64
}

type Engine struct {
	lc logger.LoggingClient
}

func NewEngine(lc logger.LoggingClient) *Engine {
	return &Engine{lc: lc}
}

// Compute validates the raw consumption series and derives the full feature
// set: the as-of reading, calendar features, trailing 7 and 30 day window
// statistics, exact-offset lag features and whole-series meter statistics.
func (e *Engine) Compute(meterId string, points []dto.ConsumptionPoint) (FeatureSet, gridErrors.GridError) {
	if len(points) == 0 {
		return FeatureSet{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeValidation, "Consumption data is required")
	}

	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		d, err := time.ParseInLocation(dto.DateLayout, p.Date, time.UTC)
		if err != nil {
			e.lc.Debugf("Rejected consumption point for meter %s: bad date %q", meterId, p.Date)
			return FeatureSet{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeValidation, fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", p.Date))
		}
		if p.Consumption < 0 {
			return FeatureSet{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeValidation, fmt.Sprintf("Negative consumption for date %s", p.Date))
		}
		// duplicate dates: the later entry wins
		byDate[d] = p.Consumption
	}

	series := make(dto.ConsumptionSeries, 0, len(byDate))
	for d, c := range byDate {
		series = append(series, dto.ConsumptionRecord{MeterID: meterId, Date: d, Consumption: c})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	asOf := series.LatestDate()
	values := make(map[string]float64, 32)

	values["consumption"] = byDate[asOf]
	e.calendarFeatures(values, asOf)
	e.windowFeatures(values, series, asOf)
	e.lagFeatures(values, byDate, asOf)
	e.meterFeatures(values, series)

	return FeatureSet{MeterID: meterId, AsOfDate: asOf, Values: values}, nil
}

func (e *Engine) calendarFeatures(values map[string]float64, asOf time.Time) {
	values["year"] = float64(asOf.Year())
	values["month"] = float64(int(asOf.Month()))
	// Monday=0 .. Sunday=6
	dow := (int(asOf.Weekday()) + 6) % 7
	values["day_of_week"] = float64(dow)
	values["day_of_year"] = float64(asOf.YearDay())
	if dow >= 5 {
		values["is_weekend"] = 1
	} else {
		values["is_weekend"] = 0
	}

	for _, s := range []string{"season_winter", "season_spring", "season_summer", "season_autumn"} {
		values[s] = 0
	}
	switch asOf.Month() {
	case time.December, time.January, time.February:
		values["season_winter"] = 1
	case time.March, time.April, time.May:
		values["season_spring"] = 1
	case time.June, time.July, time.August:
		values["season_summer"] = 1
	default:
		values["season_autumn"] = 1
	}
}

// windowFeatures computes trailing window statistics over calendar days, not
// positions: the 7 day window covers dates in [asOf-6d, asOf] regardless of
// how many readings fall inside it.
func (e *Engine) windowFeatures(values map[string]float64, series dto.ConsumptionSeries, asOf time.Time) {
	w7 := windowValues(series, asOf, 7)
	values["consumption_7d_mean"] = Mean(w7)
	values["consumption_7d_std"] = StdDev(w7)
	values["consumption_7d_max"] = Max(w7)
	values["consumption_7d_min"] = Min(w7)

	w30 := windowValues(series, asOf, 30)
	values["consumption_30d_mean"] = Mean(w30)
	values["consumption_30d_std"] = StdDev(w30)
	values["consumption_30d_max"] = Max(w30)
	values["consumption_30d_min"] = Min(w30)
}

func windowValues(series dto.ConsumptionSeries, asOf time.Time, days int) []float64 {
	start := asOf.AddDate(0, 0, -(days - 1))
	var out []float64
	for _, r := range series {
		if r.Date.Before(start) || r.Date.After(asOf) {
			continue
		}
		out = append(out, r.Consumption)
	}
	return out
}

// lagFeatures requires a reading at the exact date offset; a missing day
// yields zero rather than the nearest earlier reading.
func (e *Engine) lagFeatures(values map[string]float64, byDate map[time.Time]float64, asOf time.Time) {
	values["consumption_lag1"] = byDate[asOf.AddDate(0, 0, -1)]
	values["consumption_lag7"] = byDate[asOf.AddDate(0, 0, -7)]
}

func (e *Engine) meterFeatures(values map[string]float64, series dto.ConsumptionSeries) {
	all := make([]float64, len(series))
	for i, r := range series {
		all[i] = r.Consumption
	}

	mean := Mean(all)
	std := StdDev(all)
	min := Min(all)
	max := Max(all)
	q1 := Percentile(all, 25)
	q3 := Percentile(all, 75)

	values["meter_mean"] = mean
	values["meter_std"] = std
	values["meter_min"] = min
	values["meter_max"] = max
	values["meter_median"] = Median(all)
	values["meter_q1"] = q1
	values["meter_q3"] = q3
	values["meter_skew"] = Skewness(all)
	values["meter_kurt"] = Kurtosis(all)
	values["meter_range"] = max - min
	values["meter_iqr"] = q3 - q1
	if mean != 0 {
		values["meter_cv"] = std / mean
	} else {
		values["meter_cv"] = 0
	}
}
