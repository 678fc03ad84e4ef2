/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

//	@title			GridHawk Scoring APIs
//	@version		v1

// @BasePath	/api/v1/
// @host		localhost:48110
