/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package ml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gridErrors "gridhawk/common/errors"
)

const validArtifactJSON = `{
  "model": {
    "type": "logistic_regression",
    "intercept": -1.5,
    "coefficients": [0.5, -0.25]
  },
  "scaler": {
    "mean": [100, 10],
    "scale": [50, 5]
  },
  "feature_columns": ["consumption", "meter_cv"],
  "metadata": {
    "model_version": "2024.06.1",
    "training_date": "2024-06-10",
    "auc_score": 0.94,
    "training_samples": 12000
  }
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadArtifact(t *testing.T) {
	artifact, hErr := LoadArtifact(writeArtifact(t, validArtifactJSON))
	require.Nil(t, hErr)

	assert.Equal(t, ModelTypeLogistic, artifact.Model.Type)
	assert.Equal(t, []string{"consumption", "meter_cv"}, artifact.FeatureColumns)
	assert.Equal(t, "2024.06.1", artifact.Metadata.ModelVersion)
	assert.Equal(t, 0.94, artifact.Metadata.AUCScore)
	assert.Equal(t, 12000, artifact.Metadata.TrainingSamples)
}

func TestLoadArtifact_MissingFile(t *testing.T) {
	_, hErr := LoadArtifact(filepath.Join(t.TempDir(), "nope.json"))
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeArtifactLoad))
}

func TestLoadArtifact_BadJSON(t *testing.T) {
	_, hErr := LoadArtifact(writeArtifact(t, "{not json"))
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeArtifactLoad))
}

func TestLoadArtifact_ScalerDimensionMismatch(t *testing.T) {
	content := `{
  "model": {"type": "logistic_regression", "coefficients": [0.5, -0.25]},
  "scaler": {"mean": [100], "scale": [50, 5]},
  "feature_columns": ["consumption", "meter_cv"]
}`
	_, hErr := LoadArtifact(writeArtifact(t, content))
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeArtifactLoad))
}

func TestLoadArtifact_CoefficientMismatch(t *testing.T) {
	content := `{
  "model": {"type": "logistic_regression", "coefficients": [0.5]},
  "scaler": {"mean": [100, 10], "scale": [50, 5]},
  "feature_columns": ["consumption", "meter_cv"]
}`
	_, hErr := LoadArtifact(writeArtifact(t, content))
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeArtifactLoad))
}

func TestLoadArtifact_UnsupportedModelType(t *testing.T) {
	content := `{
  "model": {"type": "random_forest"},
  "scaler": {"mean": [1], "scale": [1]},
  "feature_columns": ["consumption"]
}`
	_, hErr := LoadArtifact(writeArtifact(t, content))
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeArtifactLoad))
}

func TestLoadArtifact_EmptyTrees(t *testing.T) {
	content := `{
  "model": {"type": "gradient_boosting"},
  "scaler": {"mean": [1], "scale": [1]},
  "feature_columns": ["consumption"]
}`
	_, hErr := LoadArtifact(writeArtifact(t, content))
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeArtifactLoad))
}

func TestArtifactInfo(t *testing.T) {
	artifact, hErr := LoadArtifact(writeArtifact(t, validArtifactJSON))
	require.Nil(t, hErr)

	info := artifact.Info()
	assert.Equal(t, ModelTypeLogistic, info.ModelType)
	assert.Equal(t, 2, info.FeatureCount)
	assert.Equal(t, []string{"consumption", "meter_cv"}, info.Features)
	assert.Equal(t, 0.3, info.Thresholds.Medium)
	assert.Equal(t, 0.5, info.Thresholds.High)
	assert.Equal(t, 0.7, info.Thresholds.Critical)

	// the Info copy must not alias the artifact's columns
	info.Features[0] = "mutated"
	assert.Equal(t, "consumption", artifact.FeatureColumns[0])
}
