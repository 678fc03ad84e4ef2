/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package db

import "errors"

const (
	Alert             = "gh:alert"
	AlertStatus       = "gh:alert:status"
	AlertMeter        = "gh:alert:meter"
	AlertRiskLevel    = "gh:alert:risk"
	AlertArea         = "gh:alert:area"
	AlertCreated      = "gh:alert:created"
	AlertPendingMeter = "gh:alert:pending:meter"
	MetricCounter     = "gh:metric:counter"
)

var (
	ErrNotFound = errors.New("item not found")
)
