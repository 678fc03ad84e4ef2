/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package db

import "fmt"

type DatabaseConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	MaxIdle       int
	Timeout       int
}

func (dbc *DatabaseConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%s", dbc.RedisHost, dbc.RedisPort)
}
