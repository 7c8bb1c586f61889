package dto

import "squadhealth/internal/healthcheck"

// 建立 / 覆寫用戶
type UpsertUserDto struct {
	Username         string   `json:"username" binding:"required"`               // 登入帳號
	Name             string   `json:"name" binding:"required"`                   // 顯示名稱
	Email            string   `json:"email,omitempty" binding:"omitempty,email"` // 信箱可選且格式驗證
	HierarchyLevelID string   `json:"hierarchyLevelId" binding:"required"`       // 所屬階層
	ReportsTo        string   `json:"reportsTo,omitempty"`                       // 直屬主管 id，空字串表示最高層
	TeamIDs          []string `json:"teamIds,omitempty"`
	IsAdmin          bool     `json:"isAdmin"`
}

func (d *UpsertUserDto) ToDomain(id string) healthcheck.User {
	return healthcheck.User{
		ID:               id,
		Username:         d.Username,
		Name:             d.Name,
		HierarchyLevelID: d.HierarchyLevelID,
		ReportsTo:        d.ReportsTo,
		TeamIDs:          d.TeamIDs,
		IsAdmin:          d.IsAdmin,
	}
}

// GET /api/v1/me
type MeResponseDto struct {
	User        healthcheck.User            `json:"user"`
	Level       *healthcheck.HierarchyLevel `json:"level,omitempty"`
	Permissions healthcheck.Permissions     `json:"permissions"`
	// 可見團隊數量，權限解析失敗時為 0
	VisibleTeams int `json:"visibleTeams"`
}

// 管理後台列表分頁
type ListQueryDto struct {
	Page int64 `form:"page" binding:"omitempty,min=1"`
	Size int64 `form:"size" binding:"omitempty,min=1,max=500"`
}

type ListResponseDto[T any] struct {
	Items []T   `json:"items"`
	Page  int64 `json:"page"`
	Size  int64 `json:"size"`
}
