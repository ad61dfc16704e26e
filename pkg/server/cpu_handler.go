/*
 * Copyright 2024-2025 Raamsri Kumar <raam@tinkershack.in>
 * Copyright 2024-2025 The StrataSTOR Authors and Contributors
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

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stratastor/vcpu/internal/common"
	"github.com/stratastor/vcpu/internal/managers"
	"github.com/stratastor/vcpu/pkg/errors"
	"github.com/stratastor/vcpu/pkg/x86"
)

// CPUHandler exposes pkg/x86's compare/decode/encode/baseline/update
// operations over HTTP, against the process-wide catalog instance
// internal/managers holds.
type CPUHandler struct{}

func NewCPUHandler() *CPUHandler {
	return &CPUHandler{}
}

func (h *CPUHandler) catalog(c *gin.Context) *x86.Map {
	cat := managers.GetCatalog()
	if cat == nil {
		common.APIError(c, errors.New(errors.CPUDriverNotReady, "no CPU catalog loaded"))
		return nil
	}
	return cat
}

// RegisterRoutes wires the CPU compatibility engine under router.
func (h *CPUHandler) RegisterRoutes(router *gin.RouterGroup) {
	cpu := router.Group("/cpu")
	{
		cpu.POST("/compare", h.compare)
		cpu.POST("/decode", h.decode)
		cpu.POST("/encode", h.encode)
		cpu.POST("/baseline", h.baseline)
		cpu.POST("/update", h.update)
	}
}

type compareRequest struct {
	Host *x86.CPUDef `json:"host"`
	CPU  *x86.CPUDef `json:"cpu"`
}

func (h *CPUHandler) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.APIError(c, errors.New(errors.ServerRequestValidation, err.Error()))
		return
	}

	catalog := h.catalog(c)
	if catalog == nil {
		return
	}

	result, message, err := x86.Compare(req.Host, req.CPU, catalog)
	if err != nil {
		common.APIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result.String(), "message": message})
}

type decodeRequest struct {
	CPU         *x86.CPUDef   `json:"cpu"`
	Data        *x86.X86Data  `json:"data"`
	AllowModels []string      `json:"allowModels,omitempty"`
	Preferred   string        `json:"preferred,omitempty"`
	Flags       x86.DecodeFlags `json:"flags,omitempty"`
}

func (h *CPUHandler) decode(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.APIError(c, errors.New(errors.ServerRequestValidation, err.Error()))
		return
	}

	catalog := h.catalog(c)
	if catalog == nil {
		return
	}

	if req.CPU == nil {
		req.CPU = &x86.CPUDef{Type: x86.CPUTypeHost}
	}

	if err := x86.DecodeCPU(req.CPU, req.Data, req.AllowModels, req.Preferred, req.Flags, catalog); err != nil {
		common.APIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": req.CPU})
}

type encodeRequest struct {
	Arch    x86.Arch         `json:"arch"`
	CPU     *x86.CPUDef      `json:"cpu"`
	Request x86.EncodeRequest `json:"request"`
}

func (h *CPUHandler) encode(c *gin.Context) {
	var req encodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.APIError(c, errors.New(errors.ServerRequestValidation, err.Error()))
		return
	}

	catalog := h.catalog(c)
	if catalog == nil {
		return
	}

	result, err := x86.EncodeCPU(req.Arch, req.CPU, req.Request, catalog)
	if err != nil {
		common.APIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

type baselineRequest struct {
	CPUs        []*x86.CPUDef    `json:"cpus"`
	AllowModels []string          `json:"allowModels,omitempty"`
	Flags       x86.BaselineFlags `json:"flags,omitempty"`
}

func (h *CPUHandler) baseline(c *gin.Context) {
	var req baselineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.APIError(c, errors.New(errors.ServerRequestValidation, err.Error()))
		return
	}

	catalog := h.catalog(c)
	if catalog == nil {
		return
	}

	result, err := x86.BaselineCPU(req.CPUs, req.AllowModels, req.Flags, catalog)
	if err != nil {
		common.APIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

type updateRequest struct {
	Guest *x86.CPUDef `json:"guest"`
	Host  *x86.CPUDef `json:"host"`
}

func (h *CPUHandler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.APIError(c, errors.New(errors.ServerRequestValidation, err.Error()))
		return
	}

	catalog := h.catalog(c)
	if catalog == nil {
		return
	}

	if err := x86.UpdateCPU(req.Guest, req.Host, catalog); err != nil {
		common.APIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": req.Guest})
}
