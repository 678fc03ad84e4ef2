/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package ml

import (
	"encoding/json"
	"fmt"
	"os"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
)

const (
	ModelTypeLogistic         = "logistic_regression"
	ModelTypeGradientBoosting = "gradient_boosting"
)

// ScalerSpec holds the standardization parameters exported at training time.
// A feature i is scaled as (x - Mean[i]) / Scale[i].
type ScalerSpec struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// TreeNode is one node of a boosted tree in flattened form. Leaf nodes carry
// the margin contribution in Value; internal nodes split on
// feature <= threshold going left.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

type ModelSpec struct {
	Type               string    `json:"type"`
	Intercept          float64   `json:"intercept,omitempty"`
	Coefficients       []float64 `json:"coefficients,omitempty"`
	BaseScore          float64   `json:"base_score,omitempty"`
	Trees              []Tree    `json:"trees,omitempty"`
	FeatureImportances []float64 `json:"feature_importances,omitempty"`
}

type ArtifactMetadata struct {
	ModelVersion    string  `json:"model_version"`
	TrainingDate    string  `json:"training_date"`
	AUCScore        float64 `json:"auc_score"`
	TrainingSamples int     `json:"training_samples"`
}

// Artifact is the serialized model bundle produced by the training pipeline.
// It is loaded once at startup and treated as read-only afterwards.
type Artifact struct {
	Model          ModelSpec        `json:"model"`
	Scaler         ScalerSpec       `json:"scaler"`
	FeatureColumns []string         `json:"feature_columns"`
	Metadata       ArtifactMetadata `json:"metadata"`
}

// LoadArtifact reads and validates the model bundle. Any defect makes the
// service unable to score, so callers treat a returned error as fatal.
func LoadArtifact(path string) (*Artifact, gridErrors.GridError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad, fmt.Sprintf("Failed to read model artifact %s: %v", path, err))
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad, fmt.Sprintf("Failed to parse model artifact %s: %v", path, err))
	}

	if hErr := artifact.validate(); hErr != nil {
		return nil, hErr
	}
	return &artifact, nil
}

func (a *Artifact) validate() gridErrors.GridError {
	n := len(a.FeatureColumns)
	if n == 0 {
		return gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad, "Model artifact has no feature columns")
	}
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
		return gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad,
			fmt.Sprintf("Scaler dimensions (%d/%d) do not match feature columns (%d)", len(a.Scaler.Mean), len(a.Scaler.Scale), n))
	}

	switch a.Model.Type {
	case ModelTypeLogistic:
		if len(a.Model.Coefficients) != n {
			return gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad,
				fmt.Sprintf("Coefficient count (%d) does not match feature columns (%d)", len(a.Model.Coefficients), n))
		}
	case ModelTypeGradientBoosting:
		if len(a.Model.Trees) == 0 {
			return gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad, "Gradient boosting model has no trees")
		}
		for ti, tree := range a.Model.Trees {
			if len(tree.Nodes) == 0 {
				return gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad, fmt.Sprintf("Tree %d has no nodes", ti))
			}
			for ni, node := range tree.Nodes {
				if node.Leaf {
					continue
				}
				if node.Feature < 0 || node.Feature >= n ||
					node.Left < 0 || node.Left >= len(tree.Nodes) ||
					node.Right < 0 || node.Right >= len(tree.Nodes) {
					return gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad, fmt.Sprintf("Tree %d node %d references out of range index", ti, ni))
				}
			}
		}
	default:
		return gridErrors.NewCommonGridError(gridErrors.ErrorTypeArtifactLoad, fmt.Sprintf("Unsupported model type %q", a.Model.Type))
	}

	return nil
}

// Info summarizes the artifact for the model info endpoint.
func (a *Artifact) Info() dto.ModelInfo {
	features := make([]string, len(a.FeatureColumns))
	copy(features, a.FeatureColumns)
	return dto.ModelInfo{
		ModelType:    a.Model.Type,
		ModelVersion: a.Metadata.ModelVersion,
		TrainingDate: a.Metadata.TrainingDate,
		AUCScore:     a.Metadata.AUCScore,
		TrainSamples: a.Metadata.TrainingSamples,
		FeatureCount: len(features),
		Features:     features,
		Thresholds: dto.RiskThresholds{
			Medium:   MediumRiskThreshold,
			High:     HighRiskThreshold,
			Critical: CriticalRiskThreshold,
		},
	}
}
