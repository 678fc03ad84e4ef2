/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package alerts

import (
	"fmt"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/google/uuid"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
	"gridhawk/internal/publisher"
	"gridhawk/internal/registry"
	"gridhawk/internal/telemetry"
	appRedis "gridhawk/pkg/db/redis"
)

// AlertService owns the alert lifecycle: creation from qualifying
// predictions, the pending -> confirmed/rejected transitions and listing.
type AlertService struct {
	dbClient  appRedis.AlertDbInterface
	registry  registry.MeterRegistry
	publisher publisher.AlertPublisher
	telemetry *telemetry.Telemetry
	lc        logger.LoggingClient
}

func NewAlertService(
	dbClient appRedis.AlertDbInterface,
	meterRegistry registry.MeterRegistry,
	alertPublisher publisher.AlertPublisher,
	tel *telemetry.Telemetry,
	lc logger.LoggingClient,
) *AlertService {
	if alertPublisher == nil {
		alertPublisher = publisher.NoopPublisher{}
	}
	return &AlertService{
		dbClient:  dbClient,
		registry:  meterRegistry,
		publisher: alertPublisher,
		telemetry: tel,
		lc:        lc,
	}
}

// CreateFromPrediction raises an alert for a theft prediction. A meter has
// at most one pending alert: if one exists its risk snapshot is refreshed in
// place instead of creating a duplicate. The per-meter lock serializes
// concurrent predictions for the same meter. The returned bool reports
// whether a new alert was created.
func (s *AlertService) CreateFromPrediction(result dto.PredictionResult) (dto.Alert, bool, gridErrors.GridError) {
	mutex, hErr := s.dbClient.AcquireRedisLock("alert_meter_lock:" + result.MeterID)
	if hErr != nil {
		return dto.Alert{}, false, hErr
	}
	defer mutex.Unlock()

	pending, hErr := s.dbClient.GetPendingAlertByMeter(result.MeterID)
	if hErr == nil {
		pending.RiskScore = result.Probability
		pending.RiskLevel = result.RiskLevel
		pending.Confidence = result.Confidence
		pending.Modified = time.Now().UTC().UnixMilli()

		updated, uErr := s.dbClient.UpdateAlert(pending)
		if uErr != nil {
			return dto.Alert{}, false, uErr
		}
		s.lc.Infof("Refreshed pending alert %s for meter %s, risk %s", updated.Id, updated.MeterID, updated.RiskLevel)
		if s.telemetry != nil {
			s.telemetry.IncrAlertsRefreshed()
		}
		_ = s.publisher.PublishAlert(publisher.EventAlertRefreshed, updated)
		return updated, false, nil
	}
	if !hErr.IsErrorType(gridErrors.ErrorTypeNotFound) {
		return dto.Alert{}, false, hErr
	}

	alert := dto.Alert{
		Id:         uuid.New().String(),
		MeterID:    result.MeterID,
		RiskScore:  result.Probability,
		RiskLevel:  result.RiskLevel,
		Confidence: result.Confidence,
		Status:     dto.AlertStatusPending,
		Created:    time.Now().UTC().UnixMilli(),
	}
	s.enrich(&alert)

	created, cErr := s.dbClient.AddAlert(alert)
	if cErr != nil {
		return dto.Alert{}, false, cErr
	}

	s.lc.Infof("Created alert %s for meter %s, risk %s score %.4f", created.Id, created.MeterID, created.RiskLevel, created.RiskScore)
	if s.telemetry != nil {
		s.telemetry.IncrAlertsCreated()
	}
	_ = s.publisher.PublishAlert(publisher.EventAlertCreated, created)
	return created, true, nil
}

// enrich fills in meter master data when the registry knows the meter; an
// unknown meter still gets an alert, just without location and loss figures.
func (s *AlertService) enrich(alert *dto.Alert) {
	if s.registry == nil {
		return
	}
	meter, hErr := s.registry.GetMeter(alert.MeterID)
	if hErr != nil {
		if !hErr.IsErrorType(gridErrors.ErrorTypeNotFound) {
			s.lc.Errorf("Meter registry lookup failed for %s: %v", alert.MeterID, hErr)
		}
		return
	}
	alert.Location = meter.Location
	alert.Area = meter.Area
	alert.CustomerName = meter.CustomerName
	alert.EstimatedLoss = s.registry.EstimatedMonthlyLoss(meter)
}

func (s *AlertService) Confirm(alertId string, notes string) (dto.Alert, gridErrors.GridError) {
	return s.transition(alertId, dto.AlertStatusConfirmed, notes, publisher.EventAlertConfirmed)
}

func (s *AlertService) Reject(alertId string, notes string) (dto.Alert, gridErrors.GridError) {
	return s.transition(alertId, dto.AlertStatusRejected, notes, publisher.EventAlertRejected)
}

// transition moves a pending alert to a terminal status. Terminal alerts are
// immutable; a second disposition attempt fails.
func (s *AlertService) transition(alertId string, target dto.AlertStatus, notes string, eventType string) (dto.Alert, gridErrors.GridError) {
	alert, hErr := s.dbClient.GetAlert(alertId)
	if hErr != nil {
		return dto.Alert{}, hErr
	}

	if alert.Status != dto.AlertStatusPending {
		return dto.Alert{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeInvalidTransition,
			fmt.Sprintf("Alert %s is %s and cannot transition to %s", alertId, alert.Status, target))
	}

	alert.Status = target
	if notes != "" {
		alert.InvestigationNotes = notes
	}
	alert.Modified = time.Now().UTC().UnixMilli()

	updated, uErr := s.dbClient.UpdateAlert(alert)
	if uErr != nil {
		return dto.Alert{}, uErr
	}

	s.lc.Infof("Alert %s transitioned to %s", alertId, target)
	_ = s.publisher.PublishAlert(eventType, updated)
	return updated, nil
}

func (s *AlertService) GetAlert(alertId string) (dto.Alert, gridErrors.GridError) {
	return s.dbClient.GetAlert(alertId)
}

func (s *AlertService) GetAlerts(filter dto.AlertFilter) ([]dto.Alert, gridErrors.GridError) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, gridErrors.NewCommonGridError(gridErrors.ErrorTypeValidation, fmt.Sprintf("Invalid alert status %q", filter.Status))
	}
	if filter.RiskLevel != "" && !filter.RiskLevel.IsValid() {
		return nil, gridErrors.NewCommonGridError(gridErrors.ErrorTypeValidation, fmt.Sprintf("Invalid risk level %q", filter.RiskLevel))
	}
	return s.dbClient.GetAlerts(filter)
}

func (s *AlertService) GetSummary() (dto.AlertSummary, gridErrors.GridError) {
	return s.dbClient.GetAlertSummary()
}
