package common

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratastor/logger"
	"github.com/stratastor/vcpu/config"
	"github.com/stratastor/vcpu/pkg/errors"
)

// Global logger
var Log logger.Logger

func init() {
	var err error
	Log, err = logger.NewTag(config.NewLoggerConfig(config.GetConfig()), "global")
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}

// UUID7 generates a new UUID using V7, but falls back to V4 if V7 errors
func UUID7() string {
	id := ""
	uv7, err := uuid.NewV7()
	if err != nil {
		id = uuid.New().String()
	} else {
		id = uv7.String()
	}
	return id
}

// Helper to add errors to context
func APIError(c *gin.Context, err error) {
	if vcpuErr, ok := err.(*errors.VCPUError); ok {
		// Do not include command in the error response
		delete(vcpuErr.Metadata, "command")
		if vcpuErr.Metadata["output"] != "" {
			vcpuErr.Message += " - " + vcpuErr.Metadata["output"]
		}
		c.JSON(vcpuErr.HTTPStatus, gin.H{
			"error": gin.H{
				"code":      vcpuErr.Code,
				"domain":    vcpuErr.Domain,
				"message":   vcpuErr.Message,
				"details":   vcpuErr.Details,
				"metadata":  vcpuErr.Metadata,
				"timestamp": time.Now().Format(time.RFC3339),
			},
		})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"message":   err.Error(),
				"timestamp": time.Now().Format(time.RFC3339),
			},
		})
	}
	c.Abort()
}

// ReadResetBody reads and resets the request body so it can be re-read by subsequent handlers
func ReadResetBody(c *gin.Context) ([]byte, error) {
	// Read and store the raw body
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	// Reset the body so it can be re-read by `ShouldBindJSON` and subsequent handlers
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	return body, nil
}

// ResetBody resets the request body so it can be re-read by subsequent handlers
func ResetBody(c *gin.Context, body []byte) {
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
}
