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

import "net/http"

const (
	DomainConfig    Domain = "CONFIG"
	DomainServer    Domain = "SERVER"
	DomainCommand   Domain = "CMD"
	DomainHealth    Domain = "HEALTH"
	DomainLifecycle Domain = "LIFECYCLE"
	DomainMisc      Domain = "MISC"
	DomainService   Domain = "SERVICE"
	DomainCatalog   Domain = "CATALOG"
	DomainCPU       Domain = "CPU"
)

// ErrorCode represents unique error identifiers
type ErrorCode int

// Domain represents the subsystem where the error originated
type Domain string

type VCPUError struct {
	Code       ErrorCode `json:"code"`
	Domain     Domain    `json:"domain"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`

	// Metadata carries additional contextual information that doesn't fit
	// the standard fields but is useful for API responses and logging.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error code ranges:
// 1000-1099: Configuration errors
// 1100-1199: Server errors
// 1300-1399: Command execution
// 1400-1499: Health check
// 1500-1599: Lifecycle management
// 1600-1699: Misc errors
// 1850-1899: Service errors
// 2400-2449: Catalog errors
// 2450-2499: CPU/compute errors
const (
	// Configuration Errors (1000-1099)
	ConfigNotFound           = 1000 + iota // Config file not found
	ConfigInvalid                          // Invalid config format
	ConfigLoadFailed                       // Failed to load config
	ConfigWriteFailed                      // Failed to write config
	ConfigPermissionDenied                 // Permission denied accessing config
	ConfigDirectoryError                   // Config directory error
	ConfigValidationFailed                 // Config validation failed
	ConfigMarshalFailed                    // Config serialization failed
	ConfigUnmarshalFailed                  // Config deserialization failed
	ConfigHomeDirectoryError               // Error getting home directory
	ConfigReadError                        // Error reading config
	ConfigWriteError                       // Error writing config
	ConfigParseError                       // Error parsing config
)

const (
	// Server Errors (1100-1199)
	ServerStart             = 1100 + iota // Failed to start server
	ServerShutdown                        // Error during shutdown
	ServerBind                            // Failed to bind port
	ServerTimeout                         // Operation timeout
	ServerMiddleware                      // Middleware error
	ServerRouting                         // Routing error
	ServerRequestValidation               // Request validation failed
	ServerResponseError                   // Response generation error
	ServerContextCancelled                // Context cancelled
	ServerTLSError                        // TLS configuration error
	ServerInternalError
	ServerBadRequest // Bad request error
)

const (
	// Command Execution (1300-1399)
	CommandNotFound     = 1300 + iota // Command not found
	CommandExecution                  // Execution failed
	CommandTimeout                    // Command timed out
	CommandPermission                 // Permission denied
	CommandInvalidInput               // Invalid command input
	CommandOutputParse                // Output parsing failed
	CommandSignal                     // Signal handling failed
	CommandContext                    // Context handling error
	CommandPipe                       // Command pipe error
	CommandWorkDir                    // Working directory error
)

const (
	// Health Check (1400-1499)
	HealthCheckFailed     = 1400 + iota // Health check failed
	HealthCheckTimeout                  // Health check timed out
	HealthCheckComponent                // Component check failed
	HealthCheckConfig                   // Health check config error
	HealthCheckEndpoint                 // Endpoint error
	HealthCheckClient                   // Client error
	HealthCheckValidation               // Validation error
	HealthCheckThreshold                // Threshold exceeded
	HealthCheckState                    // State transition error
	HealthCheckRecovery                 // Recovery failed
)

const (
	// Lifecycle Management (1500-1599)
	LifecyclePID      = 1500 + iota // PID file operation failed
	LifecycleShutdown               // Shutdown process error
	LifecycleSignal                 // Signal handling error
	LifecycleReload                 // Config reload failed
	LifecycleHook                   // Lifecycle hook error
	LifecycleState                  // State transition error
	LifecycleLock                   // Lock acquisition failed
	LifecycleCleanup                // Cleanup operation failed
	LifecycleDaemon                 // Daemon operation failed
	LifecycleResource               // Resource management error
)

const (
	// Misc Errors (1600-1699)
	VCPUMisc = 1600 + iota // Miscellaneous program error
	FSError
	NotFoundError // Not found error
	LoggerError   // Logger error
)

const (
	// Service Errors (1850-1899)
	ServiceNotFound      = 1850 + iota // Service not found
	ServiceUpdateFailed                // Service update failed
	ServiceStartFailed                 // Service start failed
	ServiceStopFailed                  // Service stop failed
	ServiceRestartFailed               // Service restart failed
	ServiceStatusFailed                // Service status check failed
)

var errorDefinitions = map[ErrorCode]struct {
	message    string
	domain     Domain
	httpStatus int
}{
	ConfigNotFound: {
		"Configuration file not found",
		DomainConfig,
		http.StatusNotFound,
	},
	ConfigInvalid: {
		"Invalid configuration format",
		DomainConfig,
		http.StatusBadRequest,
	},
	ConfigLoadFailed: {
		"Failed to load configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigWriteFailed: {
		"Failed to write configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigPermissionDenied: {
		"Permission denied accessing configuration",
		DomainConfig,
		http.StatusForbidden,
	},
	ConfigDirectoryError: {
		"Configuration directory error",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigValidationFailed: {
		"Configuration validation failed",
		DomainConfig,
		http.StatusBadRequest,
	},
	ConfigMarshalFailed: {
		"Configuration serialization failed",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigUnmarshalFailed: {
		"Configuration deserialization failed",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigHomeDirectoryError: {
		"Error getting home directory",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigReadError: {
		"Error reading configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigWriteError: {
		"Error writing configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigParseError: {
		"Error parsing configuration",
		DomainConfig,
		http.StatusBadRequest,
	},

	ServerStart: {
		"Failed to start server",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerShutdown: {
		"Error during server shutdown",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerBind: {
		"Failed to bind server port",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerTimeout: {
		"Server operation timeout",
		DomainServer,
		http.StatusGatewayTimeout,
	},
	ServerMiddleware: {
		"Server middleware error",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerRouting: {
		"Server routing error",
		DomainServer,
		http.StatusNotFound,
	},
	ServerRequestValidation: {
		"Request validation failed",
		DomainServer,
		http.StatusBadRequest,
	},
	ServerResponseError: {
		"Response generation error",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerContextCancelled: {
		"Server context cancelled",
		DomainServer,
		http.StatusServiceUnavailable,
	},
	ServerTLSError: {
		"TLS configuration error",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerInternalError: {
		"Internal server error",
		DomainServer,
		http.StatusInternalServerError,
	},
	ServerBadRequest: {
		"Bad request",
		DomainServer,
		http.StatusBadRequest,
	},

	CommandNotFound: {
		"Command not found",
		DomainCommand,
		http.StatusNotFound,
	},
	CommandExecution: {
		"Command execution failed",
		DomainCommand,
		http.StatusInternalServerError,
	},
	CommandTimeout: {
		"Command timed out",
		DomainCommand,
		http.StatusGatewayTimeout,
	},
	CommandPermission: {
		"Command permission denied",
		DomainCommand,
		http.StatusForbidden,
	},
	CommandInvalidInput: {
		"Invalid command input",
		DomainCommand,
		http.StatusBadRequest,
	},
	CommandOutputParse: {
		"Command output parsing failed",
		DomainCommand,
		http.StatusInternalServerError,
	},
	CommandSignal: {
		"Command signal handling failed",
		DomainCommand,
		http.StatusInternalServerError,
	},
	CommandContext: {
		"Command context handling error",
		DomainCommand,
		http.StatusInternalServerError,
	},
	CommandPipe: {
		"Command pipe error",
		DomainCommand,
		http.StatusInternalServerError,
	},
	CommandWorkDir: {
		"Command working directory error",
		DomainCommand,
		http.StatusInternalServerError,
	},

	HealthCheckFailed: {
		"Health check failed",
		DomainHealth,
		http.StatusServiceUnavailable,
	},
	HealthCheckTimeout: {
		"Health check timed out",
		DomainHealth,
		http.StatusGatewayTimeout,
	},
	HealthCheckComponent: {
		"Component health check failed",
		DomainHealth,
		http.StatusServiceUnavailable,
	},
	HealthCheckConfig: {
		"Health check configuration error",
		DomainHealth,
		http.StatusInternalServerError,
	},
	HealthCheckEndpoint: {
		"Health check endpoint error",
		DomainHealth,
		http.StatusInternalServerError,
	},
	HealthCheckClient: {
		"Health check client error",
		DomainHealth,
		http.StatusInternalServerError,
	},
	HealthCheckValidation: {
		"Health check validation error",
		DomainHealth,
		http.StatusBadRequest,
	},
	HealthCheckThreshold: {
		"Health check threshold exceeded",
		DomainHealth,
		http.StatusServiceUnavailable,
	},
	HealthCheckState: {
		"Health check state transition error",
		DomainHealth,
		http.StatusInternalServerError,
	},
	HealthCheckRecovery: {
		"Health check recovery failed",
		DomainHealth,
		http.StatusInternalServerError,
	},

	LifecyclePID: {
		"PID file operation failed",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleShutdown: {
		"Shutdown process error",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleSignal: {
		"Signal handling error",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleReload: {
		"Config reload failed",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleHook: {
		"Lifecycle hook error",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleState: {
		"Lifecycle state transition error",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleLock: {
		"Lock acquisition failed",
		DomainLifecycle,
		http.StatusConflict,
	},
	LifecycleCleanup: {
		"Cleanup operation failed",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleDaemon: {
		"Daemon operation failed",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleResource: {
		"Resource management error",
		DomainLifecycle,
		http.StatusInternalServerError,
	},

	VCPUMisc: {
		"Miscellaneous program error",
		DomainMisc,
		http.StatusInternalServerError,
	},
	FSError: {
		"Filesystem error",
		DomainMisc,
		http.StatusInternalServerError,
	},
	NotFoundError: {
		"Not found",
		DomainMisc,
		http.StatusNotFound,
	},
	LoggerError: {
		"Logger error",
		DomainMisc,
		http.StatusInternalServerError,
	},

	ServiceNotFound: {
		"Service not found",
		DomainService,
		http.StatusNotFound,
	},
	ServiceUpdateFailed: {
		"Service update failed",
		DomainService,
		http.StatusInternalServerError,
	},
	ServiceStartFailed: {
		"Service start failed",
		DomainService,
		http.StatusInternalServerError,
	},
	ServiceStopFailed: {
		"Service stop failed",
		DomainService,
		http.StatusInternalServerError,
	},
	ServiceRestartFailed: {
		"Service restart failed",
		DomainService,
		http.StatusInternalServerError,
	},
	ServiceStatusFailed: {
		"Service status check failed",
		DomainService,
		http.StatusInternalServerError,
	},
}
