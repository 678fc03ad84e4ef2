/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// Rank orders risk levels for filtering and comparisons; unknown levels rank lowest.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLevelLow:
		return 1
	case RiskLevelMedium:
		return 2
	case RiskLevelHigh:
		return 3
	case RiskLevelCritical:
		return 4
	default:
		return 0
	}
}

func (r RiskLevel) IsValid() bool {
	return r.Rank() != 0
}

// PredictionResult is the immutable outcome of one scoring call.
type PredictionResult struct {
	MeterID     string    `json:"meter_id"`
	Prediction  int       `json:"prediction"` // 0 or 1, the is_theft flag as the wire integer
	Probability float64   `json:"risk_score"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Confidence  float64   `json:"confidence"`
	IsTheft     bool      `json:"is_theft"`
	Created     int64     `json:"created"`
}

type FeatureContribution struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
}

type PredictionExplanation struct {
	TopFeatures []FeatureContribution `json:"top_features"`
	RiskFactors []string              `json:"risk_factors"`
}

// PredictionResponse is the wire response for a single-meter prediction.
type PredictionResponse struct {
	MeterID          string                 `json:"meter_id"`
	Prediction       int                    `json:"prediction"`
	RiskScore        float64                `json:"risk_score"`
	RiskLevel        RiskLevel              `json:"risk_level"`
	Confidence       float64                `json:"confidence"`
	IsTheft          bool                   `json:"is_theft"`
	Explanation      *PredictionExplanation `json:"explanation,omitempty"`
	ProcessingTimeMs float64                `json:"processing_time_ms"`
}

type BatchPredictionResponse struct {
	TotalMeters           int                  `json:"total_meters"`
	SuccessfulPredictions int                  `json:"successful_predictions"`
	FailedPredictions     int                  `json:"failed_predictions"`
	HighRiskDetections    int                  `json:"high_risk_detections"`
	AlertsCreated         int                  `json:"alerts_created"`
	ProcessingTimeMs      float64              `json:"processing_time_ms"`
	Predictions           []PredictionResponse `json:"predictions"`
}
