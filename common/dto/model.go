/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

// ModelInfo summarizes the loaded artifact for the model info endpoint.
type ModelInfo struct {
	ModelType    string         `json:"model_type"`
	ModelVersion string         `json:"model_version,omitempty"`
	TrainingDate string         `json:"training_date,omitempty"`
	AUCScore     float64        `json:"auc_score,omitempty"`
	TrainSamples int            `json:"training_samples,omitempty"`
	FeatureCount int            `json:"feature_count"`
	Features     []string       `json:"features"`
	Thresholds   RiskThresholds `json:"risk_thresholds"`
}

// RiskThresholds reports the lower bounds of the non-LOW bands.
type RiskThresholds struct {
	Medium   float64 `json:"medium"`
	High     float64 `json:"high"`
	Critical float64 `json:"critical"`
}
