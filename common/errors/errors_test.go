/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonGridError(t *testing.T) {
	err := NewCommonGridError(ErrorTypeNotFound, "alert not found")

	assert.Equal(t, ErrorTypeNotFound, err.ErrorType())
	assert.Equal(t, "alert not found", err.Message())
	assert.Equal(t, "alert not found", err.Error())
	assert.True(t, err.IsErrorType(ErrorTypeNotFound))
	assert.False(t, err.IsErrorType(ErrorTypeConflict))
}

func TestConvertToHTTPError(t *testing.T) {
	cases := []struct {
		errorType ErrorType
		code      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeInvalidTransition, http.StatusConflict},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeSchemaMismatch, http.StatusBadRequest},
		{ErrorTypeBadRequest, http.StatusBadRequest},
		{ErrorTypeMandatory, http.StatusBadRequest},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeServerError, http.StatusInternalServerError},
		{ErrorTypeDBError, http.StatusInternalServerError},
		{ErrorTypeArtifactLoad, http.StatusInternalServerError},
		{ErrorTypeUnknown, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		httpErr := NewCommonGridError(tc.errorType, "boom").ConvertToHTTPError()
		assert.Equal(t, tc.code, httpErr.Code, string(tc.errorType))
		assert.Equal(t, "boom", httpErr.Message)
	}
}
