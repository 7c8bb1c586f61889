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

type SessionHandler struct {
	trace    *telemetry.Trace
	sessions *service.SessionService
}

func NewSessionHandler(trace *telemetry.Trace, sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{trace: trace, sessions: sessions}
}

// Submit 提交健康檢查
// @Summary 提交一次團隊健康檢查
// @Description 同一位成員同一天對同一團隊只能提交一次，提交後不可修改。
// @Tags Session
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.SubmitSessionDto true "健康檢查內容"
// @Success 201 {object} healthcheck.Session
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var req dto.SubmitSessionDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	session, err := h.sessions.Submit(ctx, user, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusCreated)
	response.Create(c, session)
}

// List 團隊的健康檢查紀錄
// @Summary 取得團隊的健康檢查紀錄
// @Tags Session
// @Security BearerAuth
// @Produce json
// @Param teamID path string true "Team ID"
// @Param period query string false "評估期間"
// @Success 200 {object} dto.SessionListResponseDto
// @Failure 403 {object} response.Response
// @Router /api/v1/teams/{teamID}/sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var query dto.PeriodQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	sessions, err := h.sessions.ListForTeam(ctx, user, c.Param("teamID"), query.Period)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, sessions)
}
