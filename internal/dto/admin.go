package dto

import (
	"time"

	"squadhealth/internal/healthcheck"
)

// 建立維度；id 為 slug
type CreateDimensionDto struct {
	ID              string  `json:"id" binding:"required,max=64"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description,omitempty"`
	GoodDescription string  `json:"goodDescription,omitempty"`
	BadDescription  string  `json:"badDescription,omitempty"`
	IsActive        bool    `json:"isActive"`
	Weight          float64 `json:"weight" binding:"gte=0"`
	SortOrder       int     `json:"sortOrder"`
}

func (d *CreateDimensionDto) ToDomain() healthcheck.Dimension {
	return healthcheck.Dimension{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		GoodDescription: d.GoodDescription,
		BadDescription:  d.BadDescription,
		IsActive:        d.IsActive,
		Weight:          d.Weight,
	}
}

// 更新維度，只改有帶的欄位
type UpdateDimensionDto struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	GoodDescription *string  `json:"goodDescription,omitempty"`
	BadDescription  *string  `json:"badDescription,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
	Weight          *float64 `json:"weight,omitempty" binding:"omitempty,gte=0"`
	SortOrder       *int     `json:"sortOrder,omitempty"`
}

// 建立 / 覆寫階層
type UpsertHierarchyLevelDto struct {
	ID                string                  `json:"id" binding:"required,max=64"`
	Name              string                  `json:"name" binding:"required"`
	Rank              int                     `json:"rank" binding:"required,min=1"` // 1 為最高層
	IsTeamMemberLevel bool                    `json:"isTeamMemberLevel"`
	Permissions       healthcheck.Permissions `json:"permissions"`
}

func (d *UpsertHierarchyLevelDto) ToDomain() healthcheck.HierarchyLevel {
	return healthcheck.HierarchyLevel{
		ID:                d.ID,
		Name:              d.Name,
		Rank:              d.Rank,
		IsTeamMemberLevel: d.IsTeamMemberLevel,
		Permissions:       d.Permissions,
	}
}

type SupervisorLinkDto struct {
	UserID  string `json:"userId" binding:"required"`
	LevelID string `json:"levelId"`
}

// 建立 / 覆寫團隊
type UpsertTeamDto struct {
	Name    string `json:"name" binding:"required"`
	Cadence string `json:"cadence" binding:"required,oneof=weekly biweekly monthly quarterly"`
	// 省略時依 cadence 由今天起算
	NextCheckDate   *time.Time          `json:"nextCheckDate,omitempty"`
	Members         []string            `json:"members,omitempty"`
	SupervisorChain []SupervisorLinkDto `json:"supervisorChain,omitempty" binding:"omitempty,dive"` // 由 team lead 往上
}

func (d *UpsertTeamDto) ToDomain(id string) healthcheck.Team {
	chain := make([]healthcheck.SupervisorLink, 0, len(d.SupervisorChain))
	for _, link := range d.SupervisorChain {
		chain = append(chain, healthcheck.SupervisorLink{UserID: link.UserID, LevelID: link.LevelID})
	}
	team := healthcheck.Team{
		ID:              id,
		Name:            d.Name,
		Cadence:         healthcheck.Cadence(d.Cadence),
		Members:         d.Members,
		SupervisorChain: chain,
	}
	if d.NextCheckDate != nil {
		team.NextCheckDate = d.NextCheckDate.UTC()
	}
	return team
}
