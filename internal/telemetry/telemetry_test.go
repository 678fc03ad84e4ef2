/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package telemetry

import (
	"testing"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridhawk/common/db"
	dbmocks "gridhawk/mocks/db"
)

func TestCountersMirroredToDb(t *testing.T) {
	fakeDb := dbmocks.NewFakeAlertDb()
	tel := NewTelemetry(logger.NewMockClient(), fakeDb)

	tel.IncrPredictionsCompleted()
	tel.IncrPredictionsCompleted()
	tel.IncrPredictionsFailed()
	tel.IncrAlertsCreated()
	tel.IncrCacheHits()

	assert.Equal(t, int64(2), tel.PredictionsCompleted.Count())
	assert.Equal(t, int64(1), tel.PredictionsFailed.Count())
	assert.Equal(t, int64(1), tel.AlertsCreated.Count())
	assert.Equal(t, int64(1), tel.CacheHits.Count())

	mirrored, hErr := fakeDb.GetMetricCounter(db.MetricCounter + ":" + PredictionsCompletedCount)
	require.Nil(t, hErr)
	assert.Equal(t, int64(2), mirrored)
}

func TestCountersWithoutDb(t *testing.T) {
	tel := NewTelemetry(logger.NewMockClient(), nil)

	tel.IncrPredictionsCompleted()
	tel.IncrAlertsCreated()

	assert.Equal(t, int64(1), tel.PredictionsCompleted.Count())
	assert.Equal(t, int64(1), tel.AlertsCreated.Count())
}

func TestLatencyQuantile(t *testing.T) {
	tel := NewTelemetry(logger.NewMockClient(), nil)

	assert.Equal(t, float64(0), tel.LatencyQuantile(0.5))

	for _, ms := range []int64{10, 20, 30, 40, 50} {
		tel.RecordLatency(time.Duration(ms) * time.Millisecond)
	}

	p50 := tel.LatencyQuantile(0.5)
	assert.GreaterOrEqual(t, p50, float64(10))
	assert.LessOrEqual(t, p50, float64(50))

	p99 := tel.LatencyQuantile(0.99)
	assert.GreaterOrEqual(t, p99, p50)
}
