/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

// Package dbmocks provides in-memory stand-ins for the Redis alert store and
// the meter registry so service and handler tests run without infrastructure.
package dbmocks

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-redsync/redsync/v4"
	redsyncredigo "github.com/go-redsync/redsync/v4/redis/redigo"
	"github.com/gomodule/redigo/redis"

	"gridhawk/common/db"
	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
	appRedis "gridhawk/pkg/db/redis"
)

type FakeAlertDb struct {
	mu       sync.Mutex
	alerts   map[string]dto.Alert
	pending  map[string]string // meter id -> alert id
	counters map[string]int64
	rs       *redsync.Redsync

	FailNextAdd bool
}

func NewFakeAlertDb() *FakeAlertDb {
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) { return nil, errors.New("no redis in tests") },
	}
	return &FakeAlertDb{
		alerts:   make(map[string]dto.Alert),
		pending:  make(map[string]string),
		counters: make(map[string]int64),
		rs:       redsync.New(redsyncredigo.NewPool(pool)),
	}
}

func (f *FakeAlertDb) GetDbClient(*db.DatabaseConfig) appRedis.AlertDbInterface {
	return f
}

func (f *FakeAlertDb) IncrMetricCounterBy(key string, value int64) (int64, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key] += value
	return f.counters[key], nil
}

func (f *FakeAlertDb) GetMetricCounter(key string) (int64, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[key], nil
}

func (f *FakeAlertDb) SetMetricCounter(key string, value int64) gridErrors.GridError {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[key] = value
	return nil
}

// AcquireRedisLock hands out an unlocked mutex; the in-memory store does its
// own locking so the distributed lock is a no-op here.
func (f *FakeAlertDb) AcquireRedisLock(lockName string) (*redsync.Mutex, gridErrors.GridError) {
	return f.rs.NewMutex(lockName), nil
}

func (f *FakeAlertDb) AddAlert(alert dto.Alert) (dto.Alert, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailNextAdd {
		f.FailNextAdd = false
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, "induced failure")
	}
	if _, exists := f.pending[alert.MeterID]; exists {
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeConflict, "Pending alert already exists")
	}
	f.alerts[alert.Id] = alert
	if alert.Status == dto.AlertStatusPending {
		f.pending[alert.MeterID] = alert.Id
	}
	return alert, nil
}

func (f *FakeAlertDb) UpdateAlert(alert dto.Alert) (dto.Alert, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.alerts[alert.Id]
	if !ok {
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeNotFound, "Alert not found")
	}
	if existing.Status == dto.AlertStatusPending && alert.Status != dto.AlertStatusPending {
		delete(f.pending, alert.MeterID)
	}
	f.alerts[alert.Id] = alert
	return alert, nil
}

func (f *FakeAlertDb) GetAlert(alertId string) (dto.Alert, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	alert, ok := f.alerts[alertId]
	if !ok {
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeNotFound, "Alert not found")
	}
	return alert, nil
}

func (f *FakeAlertDb) GetPendingAlertByMeter(meterId string) (dto.Alert, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	alertId, ok := f.pending[meterId]
	if !ok {
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeNotFound, "No pending alert for meter")
	}
	return f.alerts[alertId], nil
}

func (f *FakeAlertDb) GetAlerts(filter dto.AlertFilter) ([]dto.Alert, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]dto.Alert, 0, len(f.alerts))
	for _, alert := range f.alerts {
		all = append(all, alert)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Created > all[j].Created })

	result := make([]dto.Alert, 0)
	skipped := 0
	for _, alert := range all {
		if filter.Status != "" && alert.Status != filter.Status {
			continue
		}
		if filter.RiskLevel != "" && alert.RiskLevel != filter.RiskLevel {
			continue
		}
		if filter.Area != "" && alert.Area != filter.Area {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		result = append(result, alert)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func (f *FakeAlertDb) GetAlertSummary() (dto.AlertSummary, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var summary dto.AlertSummary
	for _, alert := range f.alerts {
		summary.TotalAlerts++
		switch alert.Status {
		case dto.AlertStatusPending:
			summary.PendingAlerts++
		case dto.AlertStatusConfirmed:
			summary.ConfirmedAlerts++
		case dto.AlertStatusRejected:
			summary.RejectedAlerts++
		}
		switch alert.RiskLevel {
		case dto.RiskLevelLow:
			summary.LowRisk++
		case dto.RiskLevelMedium:
			summary.MediumRisk++
		case dto.RiskLevelHigh:
			summary.HighRisk++
		case dto.RiskLevelCritical:
			summary.CriticalRisk++
		}
	}
	return summary, nil
}

// FakeMeterRegistry serves meters from a map.
type FakeMeterRegistry struct {
	mu     sync.Mutex
	Meters map[string]dto.Meter
}

func NewFakeMeterRegistry(meters ...dto.Meter) *FakeMeterRegistry {
	m := make(map[string]dto.Meter, len(meters))
	for _, meter := range meters {
		m[meter.MeterID] = meter
	}
	return &FakeMeterRegistry{Meters: m}
}

func (f *FakeMeterRegistry) AddMeter(meter dto.Meter) (dto.Meter, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Meters[meter.MeterID]; exists {
		return dto.Meter{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeConflict, fmt.Sprintf("Meter %s already exists", meter.MeterID))
	}
	f.Meters[meter.MeterID] = meter
	return meter, nil
}

func (f *FakeMeterRegistry) GetMeter(meterId string) (dto.Meter, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	meter, ok := f.Meters[meterId]
	if !ok {
		return dto.Meter{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeNotFound, fmt.Sprintf("Meter %s not found", meterId))
	}
	return meter, nil
}

func (f *FakeMeterRegistry) GetMeters(area string, limit, offset int) ([]dto.Meter, gridErrors.GridError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	meters := make([]dto.Meter, 0, len(f.Meters))
	for _, meter := range f.Meters {
		if area != "" && meter.Area != area {
			continue
		}
		meters = append(meters, meter)
	}
	sort.Slice(meters, func(i, j int) bool { return meters[i].MeterID < meters[j].MeterID })

	if offset > 0 {
		if offset >= len(meters) {
			return []dto.Meter{}, nil
		}
		meters = meters[offset:]
	}
	if limit > 0 && limit < len(meters) {
		meters = meters[:limit]
	}
	return meters, nil
}

func (f *FakeMeterRegistry) EstimatedMonthlyLoss(meter dto.Meter) float64 {
	return meter.MonthlyAvgKWh * meter.TariffPerKWh
}
