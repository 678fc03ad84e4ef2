/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

type AlertStatus string

const (
	AlertStatusPending   AlertStatus = "pending"
	AlertStatusConfirmed AlertStatus = "confirmed"
	AlertStatusRejected  AlertStatus = "rejected"
)

func (s AlertStatus) IsTerminal() bool {
	return s == AlertStatusConfirmed || s == AlertStatusRejected
}

func (s AlertStatus) IsValid() bool {
	return s == AlertStatusPending || s == AlertStatusConfirmed || s == AlertStatusRejected
}

// Alert is a qualifying theft prediction awaiting human disposition.
// Location, Area, CustomerName and EstimatedLoss are enrichment supplied from
// the meter registry at creation time; the core only guarantees the risk
// snapshot and the status.
type Alert struct {
	Id                 string      `json:"id"                            codec:"id"`
	MeterID            string      `json:"meter_id"                      codec:"meter_id"`
	RiskScore          float64     `json:"risk_score"                    codec:"risk_score"`
	RiskLevel          RiskLevel   `json:"risk_level"                    codec:"risk_level"`
	Confidence         float64     `json:"confidence"                    codec:"confidence"`
	Status             AlertStatus `json:"status"                        codec:"status"`
	Location           string      `json:"location,omitempty"            codec:"location,omitempty"`
	Area               string      `json:"area,omitempty"                codec:"area,omitempty"`
	CustomerName       string      `json:"customer_name,omitempty"       codec:"customer_name,omitempty"`
	EstimatedLoss      float64     `json:"estimated_loss,omitempty"      codec:"estimated_loss,omitempty"`
	InvestigationNotes string      `json:"investigation_notes,omitempty" codec:"investigation_notes,omitempty"`
	Created            int64       `json:"created_at"                    codec:"created_at"`
	Modified           int64       `json:"updated_at,omitempty"          codec:"updated_at,omitempty"`
}

// AlertFilter narrows alert listings; zero values mean "no filter".
type AlertFilter struct {
	Status    AlertStatus
	RiskLevel RiskLevel
	Area      string
	Days      int
	Limit     int
	Offset    int
}

// TransitionRequest carries the analyst's disposition notes.
type TransitionRequest struct {
	Notes string `json:"notes"`
}

type AlertSummary struct {
	TotalAlerts     int `json:"total_alerts"`
	PendingAlerts   int `json:"pending_alerts"`
	ConfirmedAlerts int `json:"confirmed_alerts"`
	RejectedAlerts  int `json:"rejected_alerts"`
	LowRisk         int `json:"low_risk_alerts"`
	MediumRisk      int `json:"medium_risk_alerts"`
	HighRisk        int `json:"high_risk_alerts"`
	CriticalRisk    int `json:"critical_risk_alerts"`
}
