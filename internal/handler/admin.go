package handler

import (
	"net/http"

	"squadhealth/internal/dto"
	"squadhealth/internal/pkg/response"
	"squadhealth/internal/service"
	"squadhealth/internal/telemetry"
	"squadhealth/utils/validate"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	trace *telemetry.Trace
	admin *service.AdminService
}

func NewAdminHandler(trace *telemetry.Trace, admin *service.AdminService) *AdminHandler {
	return &AdminHandler{trace: trace, admin: admin}
}

// ListDimensions 維度列表（含停用）
// @Summary 取得全部健康維度
// @Tags Admin-Dimension
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Dimension
// @Failure 403 {object} response.Response
// @Router /admin/dimensions [get]
func (h *AdminHandler) ListDimensions(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}

	dims, err := h.admin.ListDimensions(ctx, user)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, dims)
}

// CreateDimension 新增維度
// @Summary 新增健康維度
// @Tags Admin-Dimension
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateDimensionDto true "維度"
// @Success 201 {object} model.Dimension
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/dimensions [post]
func (h *AdminHandler) CreateDimension(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var req dto.CreateDimensionDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	dim, err := h.admin.CreateDimension(ctx, user, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
	response.Create(c, dim)
}

// UpdateDimension 更新維度
// @Summary 部分更新健康維度
// @Tags Admin-Dimension
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param dimensionID path string true "Dimension ID"
// @Param body body dto.UpdateDimensionDto true "要更新的欄位"
// @Success 200 {object} model.Dimension
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/dimensions/{dimensionID} [patch]
func (h *AdminHandler) UpdateDimension(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var req dto.UpdateDimensionDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	dim, err := h.admin.UpdateDimension(ctx, user, c.Param("dimensionID"), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, dim)
}

// DeleteDimension 刪除維度
// @Summary 刪除健康維度（既有紀錄中的回答保留，顯示為 Unknown Dimension）
// @Tags Admin-Dimension
// @Security BearerAuth
// @Produce json
// @Param dimensionID path string true "Dimension ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/dimensions/{dimensionID} [delete]
func (h *AdminHandler) DeleteDimension(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}

	if err := h.admin.DeleteDimension(ctx, user, c.Param("dimensionID")); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "dimension deleted successfully")
}

// ListLevels 階層列表
// @Summary 取得全部階層
// @Tags Admin-Level
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.HierarchyLevel
// @Router /admin/levels [get]
func (h *AdminHandler) ListLevels(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}

	levels, err := h.admin.ListLevels(ctx, user)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, levels)
}

// CreateLevel 新增階層
// @Summary 新增階層
// @Tags Admin-Level
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.UpsertHierarchyLevelDto true "階層"
// @Success 201 {object} model.HierarchyLevel
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/levels [post]
func (h *AdminHandler) CreateLevel(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var req dto.UpsertHierarchyLevelDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	level, err := h.admin.CreateLevel(ctx, user, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
	response.Create(c, level)
}

// ReplaceLevel 覆寫階層
// @Summary 覆寫階層
// @Tags Admin-Level
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param levelID path string true "Level ID"
// @Param body body dto.UpsertHierarchyLevelDto true "階層"
// @Success 200 {object} model.HierarchyLevel
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/levels/{levelID} [put]
func (h *AdminHandler) ReplaceLevel(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var req dto.UpsertHierarchyLevelDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	level, err := h.admin.ReplaceLevel(ctx, user, c.Param("levelID"), &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, level)
}

// DeleteLevel 刪除階層
// @Summary 刪除階層（team member 階層與仍被使用的階層不可刪）
// @Tags Admin-Level
// @Security BearerAuth
// @Produce json
// @Param levelID path string true "Level ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/levels/{levelID} [delete]
func (h *AdminHandler) DeleteLevel(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}

	if err := h.admin.DeleteLevel(ctx, user, c.Param("levelID")); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "level deleted successfully")
}
