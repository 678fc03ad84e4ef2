/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
)

// MeterRegistry resolves meter master data used to enrich alerts and serve
// the meter endpoints.
type MeterRegistry interface {
	AddMeter(meter dto.Meter) (dto.Meter, gridErrors.GridError)
	GetMeter(meterId string) (dto.Meter, gridErrors.GridError)
	GetMeters(area string, limit, offset int) ([]dto.Meter, gridErrors.GridError)
	EstimatedMonthlyLoss(meter dto.Meter) float64
}

type RegistryService struct {
	db *gorm.DB
	lc logger.LoggingClient
}

// GetDbConnection dials Postgres, retrying while the database comes up.
func GetDbConnection(dsn string, lc logger.LoggingClient) (*gorm.DB, error) {
	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "gridhawk.", // schema name
				SingularTable: false,
			},
		})
		if err == nil {
			lc.Debugf("Successfully connected!")
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("failed connecting to meter registry DB: %v", err)
		}
		lc.Errorf("Failed connecting to DB. Retrying..")
		time.Sleep(2 * time.Second)
	}
}

func NewRegistryService(db *gorm.DB, lc logger.LoggingClient) (*RegistryService, error) {
	if err := db.AutoMigrate(&dto.Meter{}); err != nil {
		return nil, fmt.Errorf("failed to migrate meter registry schema: %v", err)
	}
	return &RegistryService{db: db, lc: lc}, nil
}

func (r *RegistryService) AddMeter(meter dto.Meter) (dto.Meter, gridErrors.GridError) {
	errorMessage := fmt.Sprintf("Error adding meter %s", meter.MeterID)

	var existing dto.Meter
	err := r.db.First(&existing, "meter_id = ?", meter.MeterID).Error
	if err == nil {
		return dto.Meter{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeConflict, fmt.Sprintf("%s: %s", errorMessage, "Already exists"))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.lc.Errorf("%s: %v", errorMessage, err)
		return dto.Meter{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}

	if err := r.db.Create(&meter).Error; err != nil {
		r.lc.Errorf("%s: %v", errorMessage, err)
		return dto.Meter{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, errorMessage)
	}
	return meter, nil
}

func (r *RegistryService) GetMeter(meterId string) (dto.Meter, gridErrors.GridError) {
	var meter dto.Meter
	err := r.db.First(&meter, "meter_id = ?", meterId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.Meter{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeNotFound, fmt.Sprintf("Meter %s not found", meterId))
	}
	if err != nil {
		r.lc.Errorf("Error getting meter %s: %v", meterId, err)
		return dto.Meter{}, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, fmt.Sprintf("Error getting meter %s", meterId))
	}
	return meter, nil
}

func (r *RegistryService) GetMeters(area string, limit, offset int) ([]dto.Meter, gridErrors.GridError) {
	query := r.db.Order("meter_id")
	if area != "" {
		query = query.Where("area = ?", area)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var meters []dto.Meter
	if err := query.Find(&meters).Error; err != nil {
		r.lc.Errorf("Error listing meters: %v", err)
		return nil, gridErrors.NewCommonGridError(gridErrors.ErrorTypeDBError, "Error listing meters")
	}
	return meters, nil
}

// EstimatedMonthlyLoss values a theft at one month of billing at the meter's
// average usage.
func (r *RegistryService) EstimatedMonthlyLoss(meter dto.Meter) float64 {
	return meter.MonthlyAvgKWh * meter.TariffPerKWh
}
