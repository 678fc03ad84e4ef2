/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package ml

import (
	"fmt"
	"math"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
	"gridhawk/internal/features"
)

const (
	MediumRiskThreshold   = 0.3
	HighRiskThreshold     = 0.5
	CriticalRiskThreshold = 0.7

	TheftDecisionThreshold = 0.5
)

// RiskLevelFor maps a theft probability onto the risk bands.
func RiskLevelFor(probability float64) dto.RiskLevel {
	switch {
	case probability < MediumRiskThreshold:
		return dto.RiskLevelLow
	case probability < HighRiskThreshold:
		return dto.RiskLevelMedium
	case probability < CriticalRiskThreshold:
		return dto.RiskLevelHigh
	default:
		return dto.RiskLevelCritical
	}
}

// Scorer turns a computed feature set into a theft prediction using the
// loaded artifact. It is stateless beyond the artifact and safe for
// concurrent use.
type Scorer struct {
	artifact *Artifact
	lc       logger.LoggingClient
}

func NewScorer(artifact *Artifact, lc logger.LoggingClient) *Scorer {
	return &Scorer{artifact: artifact, lc: lc}
}

func (s *Scorer) Artifact() *Artifact {
	return s.artifact
}

// Score reorders the feature set into the artifact's column order, applies
// the standard scaler and runs the classifier. The same feature set always
// yields the same result.
func (s *Scorer) Score(fs features.FeatureSet) (dto.PredictionResult, gridErrors.GridError) {
	vector, hErr := s.vectorize(fs)
	if hErr != nil {
		return dto.PredictionResult{}, hErr
	}

	scaled := s.scale(vector)
	probability := s.probability(scaled)

	// numeric guard, classifier output should already be in range
	if probability < 0 {
		probability = 0
	} else if probability > 1 {
		probability = 1
	}

	isTheft := probability >= TheftDecisionThreshold
	prediction := 0
	if isTheft {
		prediction = 1
	}

	return dto.PredictionResult{
		MeterID:     fs.MeterID,
		Prediction:  prediction,
		Probability: probability,
		RiskLevel:   RiskLevelFor(probability),
		Confidence:  math.Max(probability, 1-probability),
		IsTheft:     isTheft,
		Created:     time.Now().UTC().UnixMilli(),
	}, nil
}

// vectorize reconciles the computed features against the artifact's column
// order. A column the engine does not compute is filled with zero, never
// omitted; extra engine features are dropped. An empty feature set cannot be
// reconciled and fails the request.
func (s *Scorer) vectorize(fs features.FeatureSet) ([]float64, gridErrors.GridError) {
	if len(fs.Values) == 0 {
		return nil, gridErrors.NewCommonGridError(gridErrors.ErrorTypeSchemaMismatch, fmt.Sprintf("No features computed for meter %s", fs.MeterID))
	}
	vector := make([]float64, len(s.artifact.FeatureColumns))
	for i, col := range s.artifact.FeatureColumns {
		if v, ok := fs.Values[col]; ok {
			vector[i] = v
		} else {
			s.lc.Debugf("Feature %q not computed for meter %s, zero filled", col, fs.MeterID)
		}
	}
	return vector, nil
}

func (s *Scorer) scale(vector []float64) []float64 {
	scaled := make([]float64, len(vector))
	for i, v := range vector {
		scale := s.artifact.Scaler.Scale[i]
		if scale == 0 {
			scale = 1
		}
		scaled[i] = (v - s.artifact.Scaler.Mean[i]) / scale
	}
	return scaled
}

func (s *Scorer) probability(scaled []float64) float64 {
	switch s.artifact.Model.Type {
	case ModelTypeLogistic:
		margin := s.artifact.Model.Intercept
		for i, c := range s.artifact.Model.Coefficients {
			margin += c * scaled[i]
		}
		return sigmoid(margin)
	case ModelTypeGradientBoosting:
		margin := s.artifact.Model.BaseScore
		for _, tree := range s.artifact.Model.Trees {
			margin += evalTree(tree, scaled)
		}
		return sigmoid(margin)
	default:
		// validate() rejects unknown types at load time
		return 0
	}
}

func evalTree(tree Tree, scaled []float64) float64 {
	idx := 0
	for {
		node := tree.Nodes[idx]
		if node.Leaf {
			return node.Value
		}
		if scaled[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
