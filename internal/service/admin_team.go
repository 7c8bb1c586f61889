package service

import (
	"context"
	"time"

	"squadhealth/internal/core"
	"squadhealth/internal/database/mongodb/model"
	"squadhealth/internal/dto"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *AdminService) ListTeams(ctx context.Context, viewer healthcheck.User, query dto.ListQueryDto) (_ *dto.ListResponseDto[healthcheck.Team], returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canEditTeams); err != nil {
		return nil, err
	}
	opts := listOptions(query)
	teams, err := s.teamRepo.List(ctx, opts)
	if err != nil {
		return nil, cErr.DatabaseError("database ListTeams error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceAdminListMeta{
		Resource:    "teams",
		Page:        opts.Page + 1,
		Size:        opts.Size,
		ResultCount: len(teams),
	})

	items := make([]healthcheck.Team, 0, len(teams))
	for _, t := range teams {
		items = append(items, t.ToDomain())
	}
	return &dto.ListResponseDto[healthcheck.Team]{Items: items, Page: opts.Page + 1, Size: opts.Size}, nil
}

func (s *AdminService) CreateTeam(ctx context.Context, viewer healthcheck.User, req *dto.UpsertTeamDto) (_ *healthcheck.Team, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.authorize(ctx, viewer, canEditTeams)
	if err != nil {
		return nil, err
	}
	team, err := prepareTeam(snapshot.Directory(), req.ToDomain(primitive.NewObjectID().Hex()), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	doc, err := model.TeamFromDomain(team)
	if err != nil {
		return nil, cErr.ValidateErr(err.Error())
	}
	created, err := s.teamRepo.Create(ctx, doc)
	if err != nil {
		return nil, cErr.DatabaseError("database CreateTeam error")
	}
	s.changed(ctx, "team", created.ID.Hex(), "create")
	out := created.ToDomain()
	return &out, nil
}

func (s *AdminService) ReplaceTeam(ctx context.Context, viewer healthcheck.User, id primitive.ObjectID, req *dto.UpsertTeamDto) (_ *healthcheck.Team, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.authorize(ctx, viewer, canEditTeams)
	if err != nil {
		return nil, err
	}
	dir := snapshot.Directory()
	current, ok := dir.Team(id.Hex())
	if !ok {
		return nil, cErr.NotFound("team not found")
	}
	team := req.ToDomain(id.Hex())
	if team.NextCheckDate.IsZero() && team.Cadence == current.Cadence {
		team.NextCheckDate = current.NextCheckDate
	}
	team, err = prepareTeam(dir, team, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	doc, err := model.TeamFromDomain(team)
	if err != nil {
		return nil, cErr.ValidateErr(err.Error())
	}
	replaced, err := s.teamRepo.Replace(ctx, doc)
	if err != nil {
		return nil, sourceError(err, "team")
	}
	s.changed(ctx, "team", id.Hex(), "replace")
	out := replaced.ToDomain()
	return &out, nil
}

// DeleteTeam 既有的健康檢查紀錄保留
func (s *AdminService) DeleteTeam(ctx context.Context, viewer healthcheck.User, id primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canEditTeams); err != nil {
		return err
	}
	if err := s.teamRepo.DeleteByID(ctx, id); err != nil {
		return sourceError(err, "team")
	}
	s.changed(ctx, "team", id.Hex(), "delete")
	return nil
}

// prepareTeam 檢查成員與主管鏈都存在，補上主管鏈的 level 與下次檢查日
func prepareTeam(dir *healthcheck.Directory, team healthcheck.Team, now time.Time) (healthcheck.Team, error) {
	if !team.Cadence.Valid() {
		return team, cErr.InvalidSetting("unknown cadence " + string(team.Cadence))
	}
	for _, member := range team.Members {
		if _, ok := dir.User(member); !ok {
			return team, cErr.NotFound("member " + member + " not found")
		}
	}
	previousRank := 0
	for i, link := range team.SupervisorChain {
		supervisor, ok := dir.User(link.UserID)
		if !ok {
			return team, cErr.NotFound("supervisor " + link.UserID + " not found")
		}
		level, ok := dir.LevelOf(supervisor)
		if !ok {
			return team, cErr.NotFound("level of supervisor " + link.UserID + " not found")
		}
		// 主管鏈由下往上，rank 必須遞減
		if i > 0 && level.Rank >= previousRank {
			return team, cErr.HierarchyIntegrity("supervisor chain must go up the hierarchy")
		}
		previousRank = level.Rank
		team.SupervisorChain[i].LevelID = level.ID
	}
	if team.NextCheckDate.IsZero() {
		team.NextCheckDate = healthcheck.NextCheckDate(now, team.Cadence)
	}
	return team, nil
}
