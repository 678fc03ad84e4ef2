/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package redis

import (
	"github.com/go-redsync/redsync/v4"

	"gridhawk/common/db"
	"gridhawk/common/db/redis"
	"gridhawk/common/dto"
	gridErrors "gridhawk/common/errors"
)

type DBClient struct {
	client *redis.DBClient
}

var AlertDbClientImpl AlertDbInterface

type AlertDbInterface interface {
	redis.CommonRedisDBInterface
	GetDbClient(dbConfig *db.DatabaseConfig) AlertDbInterface
	AddAlert(alert dto.Alert) (dto.Alert, gridErrors.GridError)
	UpdateAlert(alert dto.Alert) (dto.Alert, gridErrors.GridError)
	GetAlert(alertId string) (dto.Alert, gridErrors.GridError)
	GetAlerts(filter dto.AlertFilter) ([]dto.Alert, gridErrors.GridError)
	GetPendingAlertByMeter(meterId string) (dto.Alert, gridErrors.GridError)
	GetAlertSummary() (dto.AlertSummary, gridErrors.GridError)
}

func init() {
	AlertDbClientImpl = &DBClient{}
}

func NewDBClient(dbConfig *db.DatabaseConfig) AlertDbInterface {
	return AlertDbClientImpl.GetDbClient(dbConfig)
}

func (dbClient *DBClient) GetDbClient(dbConfig *db.DatabaseConfig) AlertDbInterface {
	dbc := redis.CreateDBClient(dbConfig)
	dbc.Logger = newLoggingClient()
	return &DBClient{client: dbc}
}

func (dbClient *DBClient) IncrMetricCounterBy(key string, value int64) (int64, gridErrors.GridError) {
	return dbClient.client.IncrMetricCounterBy(key, value)
}

func (dbClient *DBClient) SetMetricCounter(key string, value int64) gridErrors.GridError {
	return dbClient.client.SetMetricCounter(key, value)
}

func (dbClient *DBClient) GetMetricCounter(key string) (int64, gridErrors.GridError) {
	return dbClient.client.GetMetricCounter(key)
}

func (dbClient *DBClient) AcquireRedisLock(name string) (*redsync.Mutex, gridErrors.GridError) {
	return dbClient.client.AcquireRedisLock(name)
}
