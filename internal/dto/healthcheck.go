package dto

import (
	"time"

	"squadhealth/internal/healthcheck"
	"squadhealth/internal/pkg/request"
)

// 單一維度的回答
type ResponseDto struct {
	DimensionID string `json:"dimensionId" binding:"required"`
	Score       int    `json:"score" binding:"required,min=1,max=3"`                           // 1 紅 / 2 黃 / 3 綠
	Trend       string `json:"trend" binding:"required,oneof=improving stable declining"`      // 趨勢
	Comment     string `json:"comment,omitempty" binding:"omitempty,max=2000" example:"備註"` // 可選
}

// POST /api/v1/sessions
type SubmitSessionDto struct {
	TeamID    string        `json:"teamId" binding:"required"`
	Date      string        `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02" example:"2024-09-02"` // 省略時為今天
	Responses []ResponseDto `json:"responses" binding:"required,min=1,dive"`
}

// GetMessages 自訂驗證錯誤訊息，key 為 "欄位.規則"
func (d SubmitSessionDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"TeamID.required":      "teamId is required",
		"Date.datetime":        "date must be formatted as YYYY-MM-DD",
		"Responses.required":   "at least one response is required",
		"Responses.min":        "at least one response is required",
		"DimensionID.required": "every response needs a dimensionId",
		"Score.required":       "score must be 1 (red), 2 (yellow) or 3 (green)",
		"Score.min":            "score must be 1 (red), 2 (yellow) or 3 (green)",
		"Score.max":            "score must be 1 (red), 2 (yellow) or 3 (green)",
		"Trend.required":       "trend must be improving, stable or declining",
		"Trend.oneof":          "trend must be improving, stable or declining",
		"Comment.max":          "comment is limited to 2000 characters",
	}
}

func (d *SubmitSessionDto) ToResponses() []healthcheck.Response {
	out := make([]healthcheck.Response, 0, len(d.Responses))
	for _, r := range d.Responses {
		out = append(out, healthcheck.Response{
			DimensionID: r.DimensionID,
			Score:       healthcheck.Score(r.Score),
			Trend:       healthcheck.Trend(r.Trend),
			Comment:     r.Comment,
		})
	}
	return out
}

type PeriodQueryDto struct {
	Period string `form:"period"`
}

type PeriodsQueryDto struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// GET /api/v1/periods
type PeriodsResponseDto struct {
	Date    string   `json:"date"`
	Current string   `json:"current"`
	Known   []string `json:"known"`
}

type TeamHistoryResponseDto struct {
	Team    healthcheck.Team            `json:"team"`
	History []healthcheck.PeriodSummary `json:"history"`
}

type SessionListResponseDto struct {
	TeamID   string                `json:"teamId"`
	Period   string                `json:"period,omitempty"`
	Sessions []healthcheck.Session `json:"sessions"`
}

type OrgTreeQueryDto struct {
	Period string `form:"period"`
}

type OrgTreeResponseDto struct {
	GeneratedAt time.Time                     `json:"generatedAt"`
	Root        *healthcheck.OrganizationNode `json:"root"`
}
