/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package ml

import (
	"testing"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
	"gridhawk/internal/features"
)

func logisticArtifact(columns []string, coefficients []float64, intercept float64) *Artifact {
	n := len(columns)
	mean := make([]float64, n)
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1
	}
	return &Artifact{
		Model: ModelSpec{
			Type:         ModelTypeLogistic,
			Intercept:    intercept,
			Coefficients: coefficients,
		},
		Scaler:         ScalerSpec{Mean: mean, Scale: scale},
		FeatureColumns: columns,
	}
}

func featureSet(values map[string]float64) features.FeatureSet {
	return features.FeatureSet{MeterID: "MTR-001", Values: values}
}

func TestRiskLevelFor(t *testing.T) {
	assert.Equal(t, dto.RiskLevelLow, RiskLevelFor(0))
	assert.Equal(t, dto.RiskLevelLow, RiskLevelFor(0.29))
	assert.Equal(t, dto.RiskLevelMedium, RiskLevelFor(0.3))
	assert.Equal(t, dto.RiskLevelMedium, RiskLevelFor(0.49))
	assert.Equal(t, dto.RiskLevelHigh, RiskLevelFor(0.5))
	assert.Equal(t, dto.RiskLevelHigh, RiskLevelFor(0.69))
	assert.Equal(t, dto.RiskLevelCritical, RiskLevelFor(0.7))
	assert.Equal(t, dto.RiskLevelCritical, RiskLevelFor(1))
}

func TestScore_LowRisk(t *testing.T) {
	artifact := logisticArtifact([]string{"consumption"}, []float64{0}, -1.927)
	scorer := NewScorer(artifact, logger.NewMockClient())

	result, hErr := scorer.Score(featureSet(map[string]float64{"consumption": 1500}))
	require.Nil(t, hErr)

	assert.InDelta(t, 0.1270, result.Probability, 0.001)
	assert.Equal(t, dto.RiskLevelLow, result.RiskLevel)
	assert.InDelta(t, 0.8730, result.Confidence, 0.001)
	assert.False(t, result.IsTheft)
	assert.Equal(t, 0, result.Prediction)
}

func TestScore_CriticalRisk(t *testing.T) {
	artifact := logisticArtifact([]string{"consumption"}, []float64{0}, 0.9445)
	scorer := NewScorer(artifact, logger.NewMockClient())

	result, hErr := scorer.Score(featureSet(map[string]float64{"consumption": 10}))
	require.Nil(t, hErr)

	assert.InDelta(t, 0.72, result.Probability, 0.001)
	assert.Equal(t, dto.RiskLevelCritical, result.RiskLevel)
	assert.True(t, result.IsTheft)
	assert.Equal(t, 1, result.Prediction)
	assert.InDelta(t, 0.72, result.Confidence, 0.001)
}

func TestScore_AppliesScaler(t *testing.T) {
	artifact := logisticArtifact([]string{"x"}, []float64{1}, 0)
	artifact.Scaler.Mean = []float64{10}
	artifact.Scaler.Scale = []float64{2}
	scorer := NewScorer(artifact, logger.NewMockClient())

	result, hErr := scorer.Score(featureSet(map[string]float64{"x": 12}))
	require.Nil(t, hErr)

	// scaled value is 1, so p = sigmoid(1)
	assert.InDelta(t, 0.7311, result.Probability, 0.001)
}

func TestScore_Deterministic(t *testing.T) {
	artifact := logisticArtifact([]string{"a", "b"}, []float64{0.4, -0.7}, 0.1)
	scorer := NewScorer(artifact, logger.NewMockClient())
	fs := featureSet(map[string]float64{"a": 1.5, "b": -2.25})

	first, hErr := scorer.Score(fs)
	require.Nil(t, hErr)
	second, hErr := scorer.Score(fs)
	require.Nil(t, hErr)

	assert.Equal(t, first.Probability, second.Probability)
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.Equal(t, first.IsTheft, second.IsTheft)
}

func TestScore_ZeroFillsUncomputedColumns(t *testing.T) {
	// the second column is declared by the model but not computed: it enters
	// the vector as 0, which the scaler shifts to -2 before the coefficient
	artifact := logisticArtifact([]string{"consumption", "not_computed"}, []float64{0, 1}, 0)
	artifact.Scaler.Mean = []float64{0, 2}
	scorer := NewScorer(artifact, logger.NewMockClient())

	result, hErr := scorer.Score(featureSet(map[string]float64{"consumption": 100}))
	require.Nil(t, hErr)
	assert.InDelta(t, 0.1192, result.Probability, 0.001)
}

func TestScore_EmptyFeatureSet(t *testing.T) {
	artifact := logisticArtifact([]string{"consumption"}, []float64{0}, 0)
	scorer := NewScorer(artifact, logger.NewMockClient())

	_, hErr := scorer.Score(featureSet(map[string]float64{}))
	require.NotNil(t, hErr)
	assert.True(t, hErr.IsErrorType(gridErrors.ErrorTypeSchemaMismatch))
}

func TestScore_ExtraFeaturesIgnored(t *testing.T) {
	artifact := logisticArtifact([]string{"consumption"}, []float64{0}, 0)
	scorer := NewScorer(artifact, logger.NewMockClient())

	result, hErr := scorer.Score(featureSet(map[string]float64{
		"consumption":   100,
		"season_spring": 1,
	}))
	require.Nil(t, hErr)
	assert.InDelta(t, 0.5, result.Probability, 1e-9)
	assert.Equal(t, dto.RiskLevelHigh, result.RiskLevel)
	assert.True(t, result.IsTheft)
}

func TestScore_GradientBoosting(t *testing.T) {
	artifact := &Artifact{
		Model: ModelSpec{
			Type: ModelTypeGradientBoosting,
			Trees: []Tree{{
				Nodes: []TreeNode{
					{Feature: 0, Threshold: 0, Left: 1, Right: 2},
					{Leaf: true, Value: -2},
					{Leaf: true, Value: 2},
				},
			}},
		},
		Scaler:         ScalerSpec{Mean: []float64{0}, Scale: []float64{1}},
		FeatureColumns: []string{"x"},
	}
	scorer := NewScorer(artifact, logger.NewMockClient())

	low, hErr := scorer.Score(featureSet(map[string]float64{"x": -1}))
	require.Nil(t, hErr)
	assert.InDelta(t, 0.1192, low.Probability, 0.001)

	high, hErr := scorer.Score(featureSet(map[string]float64{"x": 1}))
	require.Nil(t, hErr)
	assert.InDelta(t, 0.8808, high.Probability, 0.001)
}

func TestExplain_RanksByContribution(t *testing.T) {
	artifact := logisticArtifact([]string{"a", "b", "c"}, []float64{0.1, -3, 1}, 0)
	scorer := NewScorer(artifact, logger.NewMockClient())

	explanation, hErr := scorer.Explain(featureSet(map[string]float64{"a": 1, "b": 1, "c": 1}))
	require.Nil(t, hErr)
	require.Len(t, explanation.TopFeatures, 3)

	assert.Equal(t, "b", explanation.TopFeatures[0].Feature)
	assert.Equal(t, -3.0, explanation.TopFeatures[0].Contribution)
	assert.Equal(t, "c", explanation.TopFeatures[1].Feature)
	assert.Equal(t, "a", explanation.TopFeatures[2].Feature)
}
