/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package redis

import (
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	db2 "gridhawk/common/db"
	redis2 "gridhawk/common/db/redis"
	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
)

func alertKey(alertId string) string {
	return db2.Alert + ":" + alertId
}

func alertStatusKey(status dto.AlertStatus) string {
	return db2.AlertStatus + ":" + string(status)
}

func alertRiskKey(level dto.RiskLevel) string {
	return db2.AlertRiskLevel + ":" + string(level)
}

// AddAlert persists a new alert and indexes it by status, risk level and
// creation time. At most one pending alert may exist per meter; a second
// attempt while one is pending fails with a conflict.
func (dbClient *DBClient) AddAlert(alert dto.Alert) (dto.Alert, gridErrors.GridError) {

	lc := dbClient.client.Logger
	errorMessage := fmt.Sprintf("Error adding alert for meter %s", alert.MeterID)

	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	// Check whether a pending alert already exists for this meter
	exists, err := redis.Bool(conn.Do("HEXISTS", db2.AlertPendingMeter, alert.MeterID))
	if err != nil {
		lc.Errorf("%s: %v", errorMessage, err)
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}
	if exists {
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeConflict, fmt.Sprintf("%s: %s", errorMessage, "Pending alert already exists"))
	}

	_ = conn.Send("MULTI")
	if err := addAlert(conn, alert); err != nil {
		_, _ = conn.Do("DISCARD")
		lc.Errorf("%s: %v", errorMessage, err)
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}
	if _, connErr := conn.Do("EXEC"); connErr != nil {
		lc.Errorf("%s: failed to execute commands %v", errorMessage, connErr)
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}

	// Retrieve the created alert to verify it was stored correctly
	createdAlert, hErr := dbClient.GetAlert(alert.Id)
	if hErr != nil {
		lc.Errorf("Failed to save alert in DB: %s", alert.Id)
		return dto.Alert{}, hErr
	}

	lc.Infof("Successfully saved and verified alert in DB: %s", createdAlert.Id)
	return createdAlert, nil
}

func addAlert(conn redis.Conn, alert dto.Alert) error {
	m, err := marshalObject(&alert)
	if err != nil {
		return err
	}

	key := alertKey(alert.Id)
	if err := conn.Send("SET", key, m); err != nil {
		return fmt.Errorf("failed to queue SET: %v", err)
	}
	if err := conn.Send("SADD", db2.Alert, key); err != nil {
		return fmt.Errorf("failed to queue SADD: %v", err)
	}
	if err := conn.Send("ZADD", db2.AlertCreated, alert.Created, key); err != nil {
		return fmt.Errorf("failed to queue ZADD: %v", err)
	}
	if err := conn.Send("SADD", alertStatusKey(alert.Status), key); err != nil {
		return fmt.Errorf("failed to queue SADD: %v", err)
	}
	if err := conn.Send("SADD", alertRiskKey(alert.RiskLevel), key); err != nil {
		return fmt.Errorf("failed to queue SADD: %v", err)
	}
	if alert.Area != "" {
		if err := conn.Send("SADD", db2.AlertArea+":"+alert.Area, key); err != nil {
			return fmt.Errorf("failed to queue SADD: %v", err)
		}
	}
	if alert.Status == dto.AlertStatusPending {
		if err := conn.Send("HSET", db2.AlertPendingMeter, alert.MeterID, key); err != nil {
			return fmt.Errorf("failed to queue HSET: %v", err)
		}
	}

	return nil
}

// UpdateAlert rewrites the alert object and moves its index entries when the
// status changes. Leaving the pending status releases the per-meter pending
// marker.
func (dbClient *DBClient) UpdateAlert(alert dto.Alert) (dto.Alert, gridErrors.GridError) {

	lc := dbClient.client.Logger
	errorMessage := fmt.Sprintf("Error updating alert %s", alert.Id)

	existing, hErr := dbClient.GetAlert(alert.Id)
	if hErr != nil {
		return dto.Alert{}, hErr
	}

	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	m, err := marshalObject(&alert)
	if err != nil {
		lc.Errorf("%s: %v", errorMessage, err)
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}

	key := alertKey(alert.Id)
	_ = conn.Send("MULTI")
	_ = conn.Send("SET", key, m)
	if existing.Status != alert.Status {
		_ = conn.Send("SREM", alertStatusKey(existing.Status), key)
		_ = conn.Send("SADD", alertStatusKey(alert.Status), key)
		if existing.Status == dto.AlertStatusPending {
			_ = conn.Send("HDEL", db2.AlertPendingMeter, alert.MeterID)
		}
	}
	if existing.RiskLevel != alert.RiskLevel {
		_ = conn.Send("SREM", alertRiskKey(existing.RiskLevel), key)
		_ = conn.Send("SADD", alertRiskKey(alert.RiskLevel), key)
	}
	if _, connErr := conn.Do("EXEC"); connErr != nil {
		lc.Errorf("%s: failed to execute commands %v", errorMessage, connErr)
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}

	return alert, nil
}

func (dbClient *DBClient) GetAlert(alertId string) (dto.Alert, gridErrors.GridError) {

	lc := dbClient.client.Logger
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := fmt.Sprintf("Error getting alert by id %s", alertId)

	var alert dto.Alert
	err := redis2.GetObjectById(conn, alertKey(alertId), unmarshalObject, &alert)
	if err != nil {
		if errors.Is(err, db2.ErrNotFound) {
			return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeNotFound, "Alert not found")
		}
		lc.Errorf("Error while getting alert from DB for key: %s, %v", alertKey(alertId), err)
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}
	return alert, nil
}

// GetPendingAlertByMeter resolves the per-meter pending marker to the alert
// object it points at.
func (dbClient *DBClient) GetPendingAlertByMeter(meterId string) (dto.Alert, gridErrors.GridError) {

	lc := dbClient.client.Logger
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := fmt.Sprintf("Error getting pending alert for meter %s", meterId)

	var alert dto.Alert
	err := redis2.GetObjectByHash(conn, db2.AlertPendingMeter, meterId, unmarshalObject, &alert)
	if err != nil {
		if errors.Is(err, db2.ErrNotFound) {
			return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeNotFound, "No pending alert for meter")
		}
		lc.Errorf("%s: %v", errorMessage, err)
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}
	return alert, nil
}

// GetAlerts returns alerts newest first, narrowed by the filter.
func (dbClient *DBClient) GetAlerts(filter dto.AlertFilter) ([]dto.Alert, gridErrors.GridError) {

	lc := dbClient.client.Logger
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := "Error getting alerts"

	var objects [][]byte
	var err error
	if filter.Days > 0 {
		// narrow by creation time server-side, then flip to newest first
		cutoff := time.Now().Add(-time.Duration(filter.Days) * 24 * time.Hour).UnixMilli()
		objects, err = redis2.GetObjectsByScore(conn, db2.AlertCreated, cutoff, -1, 0)
		for i, j := 0, len(objects)-1; i < j; i, j = i+1, j-1 {
			objects[i], objects[j] = objects[j], objects[i]
		}
	} else {
		objects, err = redis2.GetObjectsByRevRange(conn, db2.AlertCreated, 0, -1)
	}
	if err != nil {
		lc.Errorf("%s: %v", errorMessage, err)
		return nil, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}

	alerts := make([]dto.Alert, 0)
	skipped := 0
	for _, object := range objects {
		var alert dto.Alert
		if err := unmarshalObject(object, &alert); err != nil {
			lc.Errorf("%s: failed to unmarshal alert: %v", errorMessage, err)
			return nil, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
		}
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
		alerts = append(alerts, alert)
		if filter.Limit > 0 && len(alerts) >= filter.Limit {
			break
		}
	}

	return alerts, nil
}

// GetAlertSummary counts alerts per status and risk level from the index sets.
func (dbClient *DBClient) GetAlertSummary() (dto.AlertSummary, gridErrors.GridError) {

	lc := dbClient.client.Logger
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := "Error getting alert summary"

	card := func(key string) (int, error) {
		return redis.Int(conn.Do("SCARD", key))
	}

	var summary dto.AlertSummary
	var err error
	if summary.TotalAlerts, err = card(db2.Alert); err != nil {
		lc.Errorf("%s: %v", errorMessage, err)
		return dto.AlertSummary{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}
	counts := []struct {
		key string
		out *int
	}{
		{alertStatusKey(dto.AlertStatusPending), &summary.PendingAlerts},
		{alertStatusKey(dto.AlertStatusConfirmed), &summary.ConfirmedAlerts},
		{alertStatusKey(dto.AlertStatusRejected), &summary.RejectedAlerts},
		{alertRiskKey(dto.RiskLevelLow), &summary.LowRisk},
		{alertRiskKey(dto.RiskLevelMedium), &summary.MediumRisk},
		{alertRiskKey(dto.RiskLevelHigh), &summary.HighRisk},
		{alertRiskKey(dto.RiskLevelCritical), &summary.CriticalRisk},
	}
	for _, c := range counts {
		if *c.out, err = card(c.key); err != nil {
			lc.Errorf("%s: %v", errorMessage, err)
			return dto.AlertSummary{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
		}
	}

	return summary, nil
}
