/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorType string

const (
	ErrorTypeNotFound          ErrorType = "NotFound"
	ErrorTypeServerError       ErrorType = "ServerError"
	ErrorTypeDBError           ErrorType = "DBError"
	ErrorTypeConflict          ErrorType = "Conflict"
	ErrorTypeBadRequest        ErrorType = "BadRequest"
	ErrorTypeValidation        ErrorType = "ValidationError"
	ErrorTypeSchemaMismatch    ErrorType = "SchemaMismatch"
	ErrorTypeInvalidTransition ErrorType = "InvalidTransition"
	ErrorTypeArtifactLoad      ErrorType = "ArtifactLoadError"
	ErrorTypeMandatory         ErrorType = "Mandatory"
	ErrorTypeUnknown           ErrorType = "Unknown"
	ErrorTypeConfig            ErrorType = "ConfigurationError"
	ErrorTypeUnauthorized      ErrorType = "Unauthorized"
)

type CommonGridError struct {
	errorType ErrorType
	message   string
}

type GridError interface {
	ErrorType() ErrorType
	Message() string
	IsErrorType(errorType ErrorType) bool
	Error() string
	ConvertToHTTPError() *echo.HTTPError
}

func (g CommonGridError) ErrorType() ErrorType {
	return g.errorType
}

func (g CommonGridError) Message() string {
	return g.message
}

func (g CommonGridError) Error() string {
	return g.message
}

func (g CommonGridError) IsErrorType(errorType ErrorType) bool {
	return errorType == g.errorType
}

func (g CommonGridError) ConvertToHTTPError() *echo.HTTPError {
	return echo.NewHTTPError(errorTypeToCode(g.ErrorType()), g.Message())
}

func NewCommonGridError(errorType ErrorType, message string) CommonGridError {
	return CommonGridError{errorType, message}
}

func errorTypeToCode(status ErrorType) int {
	switch status {
	case ErrorTypeServerError:
		return http.StatusInternalServerError
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict, ErrorTypeInvalidTransition:
		return http.StatusConflict
	case ErrorTypeBadRequest, ErrorTypeValidation, ErrorTypeSchemaMismatch, ErrorTypeMandatory:
		return http.StatusBadRequest
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeDBError, ErrorTypeUnknown, ErrorTypeConfig, ErrorTypeArtifactLoad:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
