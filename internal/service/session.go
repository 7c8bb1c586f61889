package service

import (
	"context"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	fluentdModel "squadhealth/internal/database/fluentd/model"
	fluentdRepo "squadhealth/internal/database/fluentd/repository"
	"squadhealth/internal/dto"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/telemetry"

	"go.uber.org/zap"
)

type SessionService struct {
	conf      *config.Configuration
	logger    *zap.Logger
	trace     *telemetry.Trace
	metric    *telemetry.Metric
	source    DataSource
	snapshots *SnapshotService
	logRepo   *fluentdRepo.LogRepository
	now       func() time.Time
}

func NewSessionService(
	conf *config.Configuration,
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	source DataSource,
	snapshots *SnapshotService,
	logRepo *fluentdRepo.LogRepository,
) *SessionService {
	return &SessionService{
		conf:      conf,
		logger:    logger,
		trace:     trace,
		metric:    metric,
		source:    source,
		snapshots: snapshots,
		logRepo:   logRepo,
		now:       time.Now,
	}
}

// Submit 儲存一次健康檢查；同一人同一團隊同一天只能提交一次，提交後不可修改
func (s *SessionService) Submit(ctx context.Context, viewer healthcheck.User, req *dto.SubmitSessionDto) (_ *healthcheck.Session, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	meta := core.TraceSubmissionMeta{UserID: viewer.ID, TeamID: req.TeamID, Responses: len(req.Responses)}
	record := fluentdModel.SubmissionLog{
		ProjectName: s.conf.App.Name,
		UserID:      viewer.ID,
		TeamID:      req.TeamID,
		Responses:   len(req.Responses),
	}
	defer func() {
		s.trace.ApplyTraceAttributes(span, meta)
		record.Result = "accepted"
		if returnedError != nil {
			record.Result = "rejected"
			record.Error = returnedError.Error()
		}
		s.metric.ObserveSubmission(record.Result)
		if err := s.logRepo.LogSubmission(ctx, record); err != nil {
			s.logger.Warn("ship submission log failed", zap.Error(err))
		}
	}()

	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	dir := snapshot.Directory()

	team, ok := dir.Team(req.TeamID)
	if !ok {
		return nil, cErr.NotFound("team not found")
	}
	if !team.HasMember(viewer.ID) && !viewer.IsAdmin {
		return nil, cErr.PermissionDenied("only members of the team can submit")
	}

	now := s.now().UTC()
	date, err := resolveSubmissionDate(req.Date, now)
	if err != nil {
		return nil, err
	}
	session := healthcheck.Session{
		TeamID:           team.ID,
		UserID:           viewer.ID,
		Date:             date,
		AssessmentPeriod: healthcheck.AssessmentPeriod(date),
		Responses:        req.ToResponses(),
		Completed:        true,
	}
	meta.Date = date.Format(time.DateOnly)
	meta.AssessmentPeriod = session.AssessmentPeriod
	record.Date = meta.Date
	record.AssessmentPeriod = session.AssessmentPeriod

	if err := healthcheck.ValidateSession(session, snapshot.Registry(), now); err != nil {
		return nil, cErr.FromDomain(err)
	}

	created, err := s.source.CreateSession(ctx, session)
	if err != nil {
		return nil, sourceError(err, "create session failed")
	}
	meta.SessionID = created.ID
	record.SessionID = created.ID

	s.logger.Info("health check submitted",
		zap.String("session_id", created.ID),
		zap.String("team_id", created.TeamID),
		zap.String("user_id", created.UserID),
		zap.String("period", created.AssessmentPeriod),
	)
	return &created, nil
}

// ListForTeam 列出團隊的提交紀錄，period 空字串表示全部
func (s *SessionService) ListForTeam(ctx context.Context, viewer healthcheck.User, teamID, period string) (_ *dto.SessionListResponseDto, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	dir := snapshot.Directory()
	if _, ok := dir.Team(teamID); !ok {
		return nil, cErr.NotFound("team not found")
	}
	if !healthcheck.CanView(viewer, teamID, dir) {
		return nil, cErr.PermissionDenied("team is not visible to the current user")
	}

	sessions, err := s.source.Sessions(ctx, SessionQuery{TeamID: teamID, Period: period})
	if err != nil {
		return nil, sourceError(err, "list sessions failed")
	}
	if sessions == nil {
		sessions = []healthcheck.Session{}
	}
	return &dto.SessionListResponseDto{TeamID: teamID, Period: period, Sessions: sessions}, nil
}

// resolveSubmissionDate 省略日期時用現在時間；指定日期則為該日 UTC 零時
func resolveSubmissionDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	date, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return time.Time{}, cErr.InvalidSubmission("date must be YYYY-MM-DD")
	}
	return date, nil
}
