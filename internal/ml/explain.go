/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package ml

import (
	"fmt"
	"sort"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
	"gridhawk/internal/features"
)

const explanationTopN = 5

// Explain attributes the score to individual features. For logistic models
// the contribution is the coefficient times the scaled value; for tree
// ensembles the exported feature importances weight the scaled deviation.
func (s *Scorer) Explain(fs features.FeatureSet) (*dto.PredictionExplanation, gridErrors.GridError) {
	vector, hErr := s.vectorize(fs)
	if hErr != nil {
		return nil, hErr
	}
	scaled := s.scale(vector)

	contributions := make([]dto.FeatureContribution, len(scaled))
	for i, col := range s.artifact.FeatureColumns {
		var c float64
		switch s.artifact.Model.Type {
		case ModelTypeLogistic:
			c = s.artifact.Model.Coefficients[i] * scaled[i]
		case ModelTypeGradientBoosting:
			if i < len(s.artifact.Model.FeatureImportances) {
				c = s.artifact.Model.FeatureImportances[i] * scaled[i]
			}
		}
		contributions[i] = dto.FeatureContribution{
			Feature:      col,
			Value:        vector[i],
			Contribution: c,
		}
	}

	sort.Slice(contributions, func(i, j int) bool {
		return abs(contributions[i].Contribution) > abs(contributions[j].Contribution)
	})
	topN := explanationTopN
	if topN > len(contributions) {
		topN = len(contributions)
	}

	return &dto.PredictionExplanation{
		TopFeatures: contributions[:topN],
		RiskFactors: riskFactors(fs),
	}, nil
}

// riskFactors renders consumption anomalies as analyst-readable statements.
func riskFactors(fs features.FeatureSet) []string {
	v := fs.Values
	factors := make([]string, 0, 4)

	meterMean := v["meter_mean"]
	if meterMean > 0 {
		if v["consumption"] < 0.5*meterMean {
			factors = append(factors, fmt.Sprintf("Current consumption %.1f is less than half the meter average %.1f", v["consumption"], meterMean))
		}
		if v["consumption_7d_mean"] < 0.6*meterMean {
			factors = append(factors, "Trailing week consumption is well below the meter's historical average")
		}
	}
	if v["meter_cv"] > 1.0 {
		factors = append(factors, "Highly volatile consumption pattern")
	}
	if lag7 := v["consumption_lag7"]; lag7 > 0 && v["consumption"] < 0.5*lag7 {
		factors = append(factors, "Consumption dropped sharply versus the same day last week")
	}
	if v["meter_skew"] < -1.0 {
		factors = append(factors, "Consumption distribution is skewed toward abnormal low readings")
	}

	return factors
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
