/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

import "time"

// Meter is the registry row describing a physical meter. MonthlyAvgKWh and
// TariffPerKWh drive the estimated-loss figure attached to alerts.
type Meter struct {
	MeterID       string    `json:"meter_id"                  gorm:"primaryKey;column:meter_id" validate:"required"`
	CustomerName  string    `json:"customer_name,omitempty"   gorm:"column:customer_name"`
	Location      string    `json:"location,omitempty"        gorm:"column:location"`
	Area          string    `json:"area,omitempty"            gorm:"column:area"`
	MeterType     string    `json:"meter_type,omitempty"      gorm:"column:meter_type"`
	MonthlyAvgKWh float64   `json:"monthly_avg_kwh,omitempty" gorm:"column:monthly_avg_kwh"`
	TariffPerKWh  float64   `json:"tariff_per_kwh,omitempty"  gorm:"column:tariff_per_kwh"`
	InstalledAt   time.Time `json:"installed_at,omitempty"    gorm:"column:installed_at"`
	CreatedAt     time.Time `json:"created_at,omitempty"      gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"      gorm:"column:updated_at;autoUpdateTime"`
}

func (Meter) TableName() string {
	return "meters"
}
