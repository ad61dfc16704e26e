/*
 * Copyright 2024-2025 Raamsri Kumar <raam@tinkershack.in>
 * Copyright 2025 The StrataSTOR Authors and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinel errors for common cases, matched by code+domain via Is().
var (
	ErrCPUNoUsableModel = &VCPUError{
		Code:       CPUNoUsableModel,
		Domain:     DomainCPU,
		Message:    errorDefinitions[CPUNoUsableModel].message,
		HTTPStatus: errorDefinitions[CPUNoUsableModel].httpStatus,
	}

	ErrCPUIncompatible = &VCPUError{
		Code:       CPUIncompatible,
		Domain:     DomainCPU,
		Message:    errorDefinitions[CPUIncompatible].message,
		HTTPStatus: errorDefinitions[CPUIncompatible].httpStatus,
	}
)

func (e *VCPUError) Error() string {
	msg := fmt.Sprintf("[%s-%d] %s", e.Domain, e.Code, e.Message)
	if e.Details != "" {
		msg += " - " + e.Details
	}
	if e.Metadata != nil {
		if stderr, ok := e.Metadata["stderr"]; ok && stderr != "" {
			msg += "\nCommand output: " + stderr
		}
	}
	return msg
}

func (e *VCPUError) WithMetadata(key, value string) *VCPUError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// MarshalJSON customizes JSON serialization
func (e *VCPUError) MarshalJSON() ([]byte, error) {
	type Alias VCPUError
	return json.Marshal(&struct {
		*Alias
		Timestamp string `json:"timestamp"`
	}{
		Alias:     (*Alias)(e),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// New creates a new VCPUError
func New(code ErrorCode, details string) *VCPUError {
	def, ok := errorDefinitions[code]
	if !ok {
		return &VCPUError{
			Code:       code,
			Domain:     "UNKNOWN",
			Message:    "Unknown error",
			Details:    details,
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	return &VCPUError{
		Code:       code,
		Domain:     def.domain,
		Message:    def.message,
		Details:    details,
		HTTPStatus: def.httpStatus,
	}
}

// Is implements the interface for errors.Is
func (e *VCPUError) Is(target error) bool {
	if t, ok := target.(*VCPUError); ok {
		return e.Code == t.Code && e.Domain == t.Domain
	}
	return false
}

// Is checks if an error matches a sentinel error
func Is(err, target error) bool {
	ve, ok := err.(*VCPUError)
	if !ok {
		return false
	}

	if t, ok := target.(*VCPUError); ok {
		return ve.Code == t.Code && ve.Domain == t.Domain
	}
	return false
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code ErrorCode) *VCPUError {
	if ve, ok := err.(*VCPUError); ok {
		newErr := New(code, ve.Details)
		if ve.Metadata != nil {
			for k, v := range ve.Metadata {
				newErr.WithMetadata(k, v)
			}
		}
		newErr.WithMetadata("wrapped_code", fmt.Sprintf("%d", ve.Code))
		newErr.WithMetadata("wrapped_domain", string(ve.Domain))
		newErr.WithMetadata("wrapped_message", ve.Message)
		return newErr
	}
	return New(code, err.Error())
}

// Unwrap implements the interface for errors.Unwrap
func (e *VCPUError) Unwrap() error {
	if e.Metadata != nil {
		if originalErr, ok := e.Metadata["wrapped_error"]; ok {
			return fmt.Errorf("%s", originalErr)
		}
	}
	return nil
}

// IsVCPUError checks if an error is a VCPUError
func IsVCPUError(err error) bool {
	_, ok := err.(*VCPUError)
	return ok
}

// CommandError helper for command execution errors
type CommandError struct {
	Command  string
	ExitCode int
	StdErr   string
}

func NewCommandError(cmd string, exitCode int, stderr string) *VCPUError {
	return New(CommandExecution, "Command execution failed").
		WithMetadata("command", cmd).
		WithMetadata("exit_code", fmt.Sprintf("%d", exitCode)).
		WithMetadata("stderr", stderr)
}

// GetCode extracts the error code from an error if it's a VCPUError.
// If not a VCPUError, returns 0 and false.
func GetCode(err error) (ErrorCode, bool) {
	if err == nil {
		return 0, false
	}

	if ve, ok := err.(*VCPUError); ok {
		return ve.Code, true
	}

	var vcpuErr *VCPUError
	if errors.As(err, &vcpuErr) {
		return vcpuErr.Code, true
	}

	return 0, false
}

// GetErrorWithCode returns the first VCPUError in the error chain with the
// specified code. Returns nil if no matching error is found.
func GetErrorWithCode(err error, code ErrorCode) *VCPUError {
	if err == nil {
		return nil
	}

	if ve, ok := err.(*VCPUError); ok && ve.Code == code {
		return ve
	}

	var vcpuErr *VCPUError
	if errors.As(err, &vcpuErr) && vcpuErr.Code == code {
		return vcpuErr
	}

	return nil
}

// errorCodeToHTTPStatus maps an error code to an HTTP status code
func errorCodeToHTTPStatus(code ErrorCode) int {
	if def, ok := errorDefinitions[code]; ok {
		return def.httpStatus
	}
	return http.StatusInternalServerError
}
