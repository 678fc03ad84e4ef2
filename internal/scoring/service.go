/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package scoring

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	gocache "github.com/patrickmn/go-cache"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
	"gridhawk/internal/alerts"
	"gridhawk/internal/features"
	"gridhawk/internal/ml"
	"gridhawk/internal/telemetry"
)

// ScoringService runs the prediction pipeline: feature engineering,
// inference, result caching and alert triggering.
type ScoringService struct {
	engine       *features.Engine
	scorer       *ml.Scorer
	alertService *alerts.AlertService
	cache        *gocache.Cache
	telemetry    *telemetry.Telemetry
	lc           logger.LoggingClient
	batchWorkers int
}

func NewScoringService(
	engine *features.Engine,
	scorer *ml.Scorer,
	alertService *alerts.AlertService,
	tel *telemetry.Telemetry,
	lc logger.LoggingClient,
	cacheTTL time.Duration,
	batchWorkers int,
) *ScoringService {
	if batchWorkers <= 0 {
		batchWorkers = 8
	}
	return &ScoringService{
		engine:       engine,
		scorer:       scorer,
		alertService: alertService,
		cache:        gocache.New(cacheTTL, 2*cacheTTL),
		telemetry:    tel,
		lc:           lc,
		batchWorkers: batchWorkers,
	}
}

// Predict scores one meter. Results are cached per meter for the configured
// TTL so dashboards polling the same meter do not recompute. Once the
// classifier has produced a theft prediction, the resulting alert write is
// allowed to complete even if the caller has gone away.
func (s *ScoringService) Predict(ctx context.Context, request dto.PredictionRequest) (dto.PredictionResponse, gridErrors.GridError) {
	start := time.Now()

	if cached, found := s.cache.Get(request.MeterID); found {
		if s.telemetry != nil {
			s.telemetry.IncrCacheHits()
		}
		result := cached.(dto.PredictionResult)
		s.lc.Debugf("Serving cached prediction for meter %s", request.MeterID)
		return s.buildResponse(result, nil, start), nil
	}

	featureSet, hErr := s.engine.Compute(request.MeterID, request.ConsumptionData)
	if hErr != nil {
		s.recordFailure()
		return dto.PredictionResponse{}, hErr
	}

	if err := ctx.Err(); err != nil {
		s.recordFailure()
		return dto.PredictionResponse{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeServerError, "Request cancelled before scoring")
	}

	result, hErr := s.scorer.Score(featureSet)
	if hErr != nil {
		s.recordFailure()
		return dto.PredictionResponse{}, hErr
	}

	var explanation *dto.PredictionExplanation
	if request.IncludeExplanation {
		explanation, hErr = s.scorer.Explain(featureSet)
		if hErr != nil {
			s.recordFailure()
			return dto.PredictionResponse{}, hErr
		}
	}

	// point of no return for the alert side effect
	if result.IsTheft {
		if _, _, aErr := s.alertService.CreateFromPrediction(result); aErr != nil {
			// scoring result is still valid, alerting is best effort here
			s.lc.Errorf("Failed to raise alert for meter %s: %v", request.MeterID, aErr)
		}
	}

	s.cache.SetDefault(request.MeterID, result)
	if s.telemetry != nil {
		s.telemetry.IncrPredictionsCompleted()
		s.telemetry.RecordLatency(time.Since(start))
	}

	return s.buildResponse(result, explanation, start), nil
}

func (s *ScoringService) buildResponse(result dto.PredictionResult, explanation *dto.PredictionExplanation, start time.Time) dto.PredictionResponse {
	return dto.PredictionResponse{
		MeterID:          result.MeterID,
		Prediction:       result.Prediction,
		RiskScore:        result.Probability,
		RiskLevel:        result.RiskLevel,
		Confidence:       result.Confidence,
		IsTheft:          result.IsTheft,
		Explanation:      explanation,
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000,
	}
}

func (s *ScoringService) recordFailure() {
	if s.telemetry != nil {
		s.telemetry.IncrPredictionsFailed()
	}
}

type batchOutcome struct {
	response dto.PredictionResponse
	failed   bool
}

// PredictBatch groups the flat readings per meter and scores the meters
// concurrently with a bounded worker pool. Per-meter failures do not abort
// the batch.
func (s *ScoringService) PredictBatch(ctx context.Context, request dto.BatchPredictionRequest) (dto.BatchPredictionResponse, gridErrors.GridError) {
	start := time.Now()

	byMeter := make(map[string][]dto.ConsumptionPoint)
	for _, reading := range request.Data {
		byMeter[reading.MeterID] = append(byMeter[reading.MeterID], dto.ConsumptionPoint{
			Date:        reading.Date,
			Consumption: reading.Consumption,
		})
	}
	if len(byMeter) == 0 {
		return dto.BatchPredictionResponse{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeValidation, "Batch contains no readings")
	}

	meterIds := make([]string, 0, len(byMeter))
	for meterId := range byMeter {
		meterIds = append(meterIds, meterId)
	}
	sort.Strings(meterIds)

	jobs := make(chan string)
	outcomes := make(chan batchOutcome, len(meterIds))

	var wg sync.WaitGroup
	workers := s.batchWorkers
	if workers > len(meterIds) {
		workers = len(meterIds)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for meterId := range jobs {
				resp, hErr := s.Predict(ctx, dto.PredictionRequest{
					MeterID:         meterId,
					ConsumptionData: byMeter[meterId],
				})
				if hErr != nil {
					s.lc.Errorf("Batch prediction failed for meter %s: %v", meterId, hErr)
					outcomes <- batchOutcome{failed: true}
					continue
				}
				outcomes <- batchOutcome{response: resp}
			}
		}()
	}

	for _, meterId := range meterIds {
		jobs <- meterId
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	response := dto.BatchPredictionResponse{TotalMeters: len(meterIds)}
	for outcome := range outcomes {
		if outcome.failed {
			response.FailedPredictions++
			continue
		}
		response.SuccessfulPredictions++
		if outcome.response.RiskLevel == dto.RiskLevelHigh || outcome.response.RiskLevel == dto.RiskLevelCritical {
			response.HighRiskDetections++
		}
		if outcome.response.IsTheft {
			response.AlertsCreated++
		}
		response.Predictions = append(response.Predictions, outcome.response)
	}
	sort.Slice(response.Predictions, func(i, j int) bool {
		return response.Predictions[i].MeterID < response.Predictions[j].MeterID
	})
	response.ProcessingTimeMs = float64(time.Since(start).Microseconds()) / 1000

	return response, nil
}
