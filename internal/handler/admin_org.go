package handler

import (
	"net/http"

	"squadhealth/internal/dto"
	"squadhealth/internal/pkg/response"
	"squadhealth/utils/validate"

	"github.com/gin-gonic/gin"
)

// ListUsers 用戶列表
// @Summary 取得用戶列表
// @Tags Admin-User
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼，從 1 開始"
// @Param size query int false "每頁筆數"
// @Success 200 {object} dto.ListResponseDto[healthcheck.User]
// @Failure 403 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var query dto.ListQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	users, err := h.admin.ListUsers(ctx, user, query)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, users)
}

// CreateUser 新增用戶
// @Summary 新增用戶
// @Tags Admin-User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.UpsertUserDto true "用戶資訊"
// @Success 201 {object} healthcheck.User
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var req dto.UpsertUserDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	created, err := h.admin.CreateUser(ctx, user, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
	response.Create(c, created)
}

// ReplaceUser 覆寫用戶
// @Summary 覆寫用戶（匯報對象必須位於較高階層）
// @Tags Admin-User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param body body dto.UpsertUserDto true "用戶資訊"
// @Success 200 {object} healthcheck.User
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users/{userID} [put]
func (h *AdminHandler) ReplaceUser(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	id, cause, respErr := validate.ParseObjectID(c, "userID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	var req dto.UpsertUserDto
	if cause, respErr = validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	replaced, err := h.admin.ReplaceUser(ctx, user, id, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, replaced)
}

// DeleteUser 刪除用戶
// @Summary 刪除用戶（仍有直屬部屬時拒絕）
// @Tags Admin-User
// @Security BearerAuth
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/users/{userID} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	id, cause, respErr := validate.ParseObjectID(c, "userID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.admin.DeleteUser(ctx, user, id); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "user deleted successfully")
}

// ListTeams 團隊列表
// @Summary 取得團隊列表
// @Tags Admin-Team
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼，從 1 開始"
// @Param size query int false "每頁筆數"
// @Success 200 {object} dto.ListResponseDto[healthcheck.Team]
// @Failure 403 {object} response.Response
// @Router /admin/teams [get]
func (h *AdminHandler) ListTeams(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var query dto.ListQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	teams, err := h.admin.ListTeams(ctx, user, query)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, teams)
}

// CreateTeam 新增團隊
// @Summary 新增團隊
// @Tags Admin-Team
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.UpsertTeamDto true "團隊"
// @Success 201 {object} healthcheck.Team
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/teams [post]
func (h *AdminHandler) CreateTeam(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var req dto.UpsertTeamDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	team, err := h.admin.CreateTeam(ctx, user, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
	response.Create(c, team)
}

// ReplaceTeam 覆寫團隊
// @Summary 覆寫團隊
// @Tags Admin-Team
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param body body dto.UpsertTeamDto true "團隊"
// @Success 200 {object} healthcheck.Team
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/teams/{teamID} [put]
func (h *AdminHandler) ReplaceTeam(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	id, cause, respErr := validate.ParseObjectID(c, "teamID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	var req dto.UpsertTeamDto
	if cause, respErr = validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	team, err := h.admin.ReplaceTeam(ctx, user, id, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, team)
}

// DeleteTeam 刪除團隊
// @Summary 刪除團隊（既有健康檢查紀錄保留）
// @Tags Admin-Team
// @Security BearerAuth
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/teams/{teamID} [delete]
func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	id, cause, respErr := validate.ParseObjectID(c, "teamID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.admin.DeleteTeam(ctx, user, id); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "team deleted successfully")
}
