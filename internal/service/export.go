package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/telemetry"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	orgSheet   = "Org"
	teamsSheet = "Teams"
)

var orgSheetHeader = []any{
	"Depth", "User ID", "Name", "Level", "Teams", "Members",
	"Avg Health", "Teams With Data", "Completion %", "Improving", "Stable", "Declining",
}

var teamsSheetHeader = []any{
	"Team", "Period", "Date", "Respondents", "Dimension",
	"Average", "Red", "Yellow", "Green", "Trend", "Health %",
}

type ExportService struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	dashboard *DashboardService
	snapshots *SnapshotService
	source    DataSource
}

func NewExportService(logger *zap.Logger, trace *telemetry.Trace, dashboard *DashboardService, snapshots *SnapshotService, source DataSource) *ExportService {
	return &ExportService{logger: logger, trace: trace, dashboard: dashboard, snapshots: snapshots, source: source}
}

// ExportOrg 匯出子樹的 xlsx，需要 CanExportData 或管理員
func (s *ExportService) ExportOrg(ctx context.Context, viewer healthcheck.User, rootUserID, period string) (_ []byte, filename string, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	dir := snapshot.Directory()
	if !healthcheck.HasPermission(viewer, dir, func(p healthcheck.Permissions) bool { return p.CanExportData }) {
		return nil, "", cErr.PermissionDenied("exporting requires the export permission")
	}

	tree, err := s.dashboard.OrgTree(ctx, viewer, rootUserID, period)
	if err != nil {
		return nil, "", err
	}
	sessions, err := s.source.Sessions(ctx, SessionQuery{Period: period})
	if err != nil {
		return nil, "", sourceError(err, "load sessions failed")
	}

	content, err := BuildOrgWorkbook(tree.Root, sessions, snapshot.Registry(), period)
	if err != nil {
		s.logger.Error("build export workbook failed", zap.Error(err))
		return nil, "", cErr.InternalServer("build export workbook failed")
	}
	filename = fmt.Sprintf("squad-health-%s-%s.xlsx", rootUserID, tree.GeneratedAt.Format("20060102"))
	return content, filename, nil
}

// BuildOrgWorkbook 產生 Org (攤平的組織樹) 與 Teams (每隊每維度) 兩張工作表
func BuildOrgWorkbook(root *healthcheck.OrganizationNode, sessions []healthcheck.Session, dims *healthcheck.Registry, period string) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for _, sheet := range []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{name: orgSheet, header: orgSheetHeader, rows: orgRows(root)},
		{name: teamsSheet, header: teamsSheetHeader, rows: teamRows(root, sessions, dims, period)},
	} {
		if err := writeSheet(f, sheet.name, sheet.header, sheet.rows, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	// 刪除預設的 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(orgSheet); err == nil {
		f.SetActiveSheet(index)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, header []any, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set %s header style: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", name, i+2, err)
		}
	}
	// 凍結表頭
	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func orgRows(root *healthcheck.OrganizationNode) [][]any {
	var rows [][]any
	root.Walk(func(n *healthcheck.OrganizationNode, depth int) {
		m := n.Metrics
		var avg any = ""
		if m.HealthSamples > 0 {
			avg = round2(m.AvgHealth)
		}
		name := n.User.Name
		if name == "" {
			name = n.User.Username
		}
		rows = append(rows, []any{
			depth,
			n.User.ID,
			strings.Repeat("  ", depth) + name,
			n.Level.Name,
			m.TotalTeams,
			m.TotalMembers,
			avg,
			m.HealthSamples,
			round2(m.CompletionRate * 100),
			m.Trends.Improving,
			m.Trends.Stable,
			m.Trends.Declining,
		})
	})
	return rows
}

func teamRows(root *healthcheck.OrganizationNode, sessions []healthcheck.Session, dims *healthcheck.Registry, period string) [][]any {
	if root == nil {
		return nil
	}
	var rows [][]any
	for _, team := range root.Teams {
		summary := healthcheck.SummarizeTeam(team, sessions, dims, period)
		if summary == nil {
			rows = append(rows, []any{team.Name, period, "", 0, "no data"})
			continue
		}
		for _, d := range summary.Dimensions {
			var avg any = ""
			if d.HasData {
				avg = round2(d.AverageScore)
			}
			rows = append(rows, []any{
				team.Name,
				summary.AssessmentPeriod,
				summary.Date.Format(time.DateOnly),
				summary.Respondents,
				d.DimensionName,
				avg,
				d.Distribution.Red,
				d.Distribution.Yellow,
				d.Distribution.Green,
				string(d.Trend),
				round2(summary.HealthPercentage),
			})
		}
	}
	return rows
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
