package handler

import (
	"fmt"
	"net/http"

	"squadhealth/internal/dto"
	"squadhealth/internal/pkg/response"
	"squadhealth/internal/service"
	"squadhealth/internal/telemetry"
	"squadhealth/utils/validate"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	trace     *telemetry.Trace
	dashboard *service.DashboardService
	export    *service.ExportService
}

func NewDashboardHandler(
	trace *telemetry.Trace,
	dashboard *service.DashboardService,
	export *service.ExportService,
) *DashboardHandler {
	return &DashboardHandler{trace: trace, dashboard: dashboard, export: export}
}

// Me 目前登入者
// @Summary 取得目前使用者、階層與權限
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MeResponseDto
// @Failure 401 {object} response.Response
// @Router /api/v1/me [get]
func (h *DashboardHandler) Me(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}

	me, err := h.dashboard.Me(ctx, user)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, me)
}

// Dimensions 啟用中的健康維度
// @Summary 取得啟用中的健康維度
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {array} healthcheck.Dimension
// @Router /api/v1/dimensions [get]
func (h *DashboardHandler) Dimensions(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	dims, err := h.dashboard.ActiveDimensions(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, dims)
}

// Periods 評估期間
// @Summary 取得指定日期所屬的評估期間與已有資料的期間
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param date query string false "日期 (YYYY-MM-DD)，預設今天"
// @Success 200 {object} dto.PeriodsResponseDto
// @Failure 400 {object} response.Response
// @Router /api/v1/periods [get]
func (h *DashboardHandler) Periods(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var query dto.PeriodsQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	periods, err := h.dashboard.Periods(ctx, user, query.Date)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, periods)
}

// Teams 可見的團隊
// @Summary 取得目前使用者可見的團隊
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {array} healthcheck.Team
// @Router /api/v1/teams [get]
func (h *DashboardHandler) Teams(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}

	teams, err := h.dashboard.VisibleTeams(ctx, user)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, teams)
}

// Summary 團隊健康摘要
// @Summary 取得團隊最新一批（或指定期間）的健康摘要
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param teamID path string true "Team ID"
// @Param period query string false "評估期間，例：2024 - 2nd Half"
// @Success 200 {object} healthcheck.TeamHealthSummary
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/teams/{teamID}/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
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

	summary, err := h.dashboard.TeamSummary(ctx, user, c.Param("teamID"), query.Period)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, summary)
}

// History 團隊歷史
// @Summary 取得團隊每個評估期間的健康摘要
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} dto.TeamHistoryResponseDto
// @Failure 403 {object} response.Response
// @Router /api/v1/teams/{teamID}/history [get]
func (h *DashboardHandler) History(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}

	history, err := h.dashboard.TeamHistory(ctx, user, c.Param("teamID"))
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, history)
}

// OrgTree 組織樹
// @Summary 以指定使用者為根建立組織健康樹
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param userID path string true "根節點 User ID"
// @Param period query string false "只統計此評估期間"
// @Success 200 {object} dto.OrgTreeResponseDto
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/org/{userID}/tree [get]
func (h *DashboardHandler) OrgTree(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var query dto.OrgTreeQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	tree, err := h.dashboard.OrgTree(ctx, user, c.Param("userID"), query.Period)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, tree)
}

// Export 匯出組織樹
// @Summary 匯出組織健康樹為 xlsx
// @Tags Dashboard
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param userID path string true "根節點 User ID"
// @Param period query string false "只統計此評估期間"
// @Success 200 {file} file
// @Failure 403 {object} response.Response
// @Router /api/v1/org/{userID}/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)
	user, ok := viewer(c, end)
	if !ok {
		return
	}
	var query dto.OrgTreeQueryDto
	if cause, respErr := validate.BindQuery(c, &query); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	content, filename, err := h.export.ExportOrg(ctx, user, c.Param("userID"), query.Period)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Raw(c, gin.H{"filename": filename, "bytes": len(content)})
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}
