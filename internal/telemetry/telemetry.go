/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package telemetry

import (
	"sync"
	"time"

	"github.com/caio/go-tdigest/v4"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	gometrics "github.com/rcrowley/go-metrics"

	"gridhawk/common/db"
	"gridhawk/common/db/redis"
)

const (
	PredictionsCompletedCount = "PredictionsCompletedCount"
	PredictionsFailedCount    = "PredictionsFailedCount"
	AlertsCreatedCount        = "AlertsCreatedCount"
	AlertsRefreshedCount      = "AlertsRefreshedCount"
	CacheHitsCount            = "CacheHitsCount"
)

// Telemetry tracks scoring throughput counters and a latency digest. The
// counters are mirrored into Redis so values survive restarts and stay in
// sync across service instances.
type Telemetry struct {
	PredictionsCompleted gometrics.Counter
	PredictionsFailed    gometrics.Counter
	AlertsCreated        gometrics.Counter
	AlertsRefreshed      gometrics.Counter
	CacheHits            gometrics.Counter

	mu          sync.Mutex
	latency     *tdigest.TDigest
	redisClient redis.CommonRedisDBInterface
	lc          logger.LoggingClient
}

func NewTelemetry(lc logger.LoggingClient, redisClient redis.CommonRedisDBInterface) *Telemetry {
	t := Telemetry{
		PredictionsCompleted: gometrics.NewCounter(),
		PredictionsFailed:    gometrics.NewCounter(),
		AlertsCreated:        gometrics.NewCounter(),
		AlertsRefreshed:      gometrics.NewCounter(),
		CacheHits:            gometrics.NewCounter(),
		redisClient:          redisClient,
		lc:                   lc,
	}
	t.latency, _ = tdigest.New()

	registry := gometrics.NewRegistry()
	_ = registry.Register(PredictionsCompletedCount, t.PredictionsCompleted)
	_ = registry.Register(PredictionsFailedCount, t.PredictionsFailed)
	_ = registry.Register(AlertsCreatedCount, t.AlertsCreated)
	_ = registry.Register(AlertsRefreshedCount, t.AlertsRefreshed)
	_ = registry.Register(CacheHitsCount, t.CacheHits)

	return &t
}

func (t *Telemetry) IncrPredictionsCompleted() {
	t.PredictionsCompleted.Inc(1)
	t.incrDbCounter(PredictionsCompletedCount)
}

func (t *Telemetry) IncrPredictionsFailed() {
	t.PredictionsFailed.Inc(1)
	t.incrDbCounter(PredictionsFailedCount)
}

func (t *Telemetry) IncrAlertsCreated() {
	t.AlertsCreated.Inc(1)
	t.incrDbCounter(AlertsCreatedCount)
}

func (t *Telemetry) IncrAlertsRefreshed() {
	t.AlertsRefreshed.Inc(1)
	t.incrDbCounter(AlertsRefreshedCount)
}

func (t *Telemetry) IncrCacheHits() {
	t.CacheHits.Inc(1)
	t.incrDbCounter(CacheHitsCount)
}

func (t *Telemetry) incrDbCounter(metricName string) {
	if t.redisClient == nil {
		return
	}
	if _, err := t.redisClient.IncrMetricCounterBy(db.MetricCounter+":"+metricName, 1); err != nil {
		t.lc.Debugf("Failed to sync counter %s to DB: %v", metricName, err)
	}
}

// RecordLatency feeds the scoring latency digest.
func (t *Telemetry) RecordLatency(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.latency.Add(float64(d.Milliseconds()))
}

// LatencyQuantile reports the given latency quantile in milliseconds, or 0
// when nothing has been recorded yet.
func (t *Telemetry) LatencyQuantile(q float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latency.Count() == 0 {
		return 0
	}
	return t.latency.Quantile(q)
}
