package service

import (
	"context"

	"squadhealth/internal/database/mongodb/model"
	"squadhealth/internal/dto"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"

	"go.mongodb.org/mongo-driver/mongo"
)

func (s *AdminService) ListLevels(ctx context.Context, viewer healthcheck.User) (_ []*model.HierarchyLevel, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canConfigureSystem); err != nil {
		return nil, err
	}
	levels, err := s.levelRepo.ListAll(ctx)
	if err != nil {
		return nil, cErr.DatabaseError("database ListLevels error")
	}
	return levels, nil
}

func (s *AdminService) CreateLevel(ctx context.Context, viewer healthcheck.User, req *dto.UpsertHierarchyLevelDto) (_ *model.HierarchyLevel, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.authorize(ctx, viewer, canConfigureSystem)
	if err != nil {
		return nil, err
	}
	level := req.ToDomain()
	if _, exists := snapshot.Directory().Level(level.ID); exists {
		return nil, cErr.Conflict("hierarchy level id already exists")
	}
	if err := validateLevelChange(snapshot.Levels, level, ""); err != nil {
		return nil, err
	}

	created, err := s.levelRepo.Create(ctx, model.HierarchyLevelFromDomain(level))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.Conflict("hierarchy level id or rank already exists")
		}
		return nil, cErr.DatabaseError("database CreateLevel error")
	}
	s.changed(ctx, "hierarchy_level", created.ID, "create")
	return created, nil
}

func (s *AdminService) ReplaceLevel(ctx context.Context, viewer healthcheck.User, id string, req *dto.UpsertHierarchyLevelDto) (_ *model.HierarchyLevel, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.authorize(ctx, viewer, canConfigureSystem)
	if err != nil {
		return nil, err
	}
	level := req.ToDomain()
	level.ID = id
	if _, exists := snapshot.Directory().Level(id); !exists {
		return nil, cErr.NotFound("hierarchy level not found")
	}
	if err := validateLevelChange(snapshot.Levels, level, id); err != nil {
		return nil, err
	}
	// 調整 rank 不能讓既有的匯報關係倒置
	levels := replaceLevel(snapshot.Levels, level, id)
	dir := healthcheck.NewDirectory(levels, snapshot.Users, snapshot.Teams)
	for _, u := range snapshot.Users {
		if u.HierarchyLevelID != id && !reportsToLevel(u, id, dir) {
			continue
		}
		if err := dir.ValidateReportsTo(u); err != nil {
			return nil, cErr.FromDomain(err)
		}
	}

	replaced, err := s.levelRepo.Replace(ctx, model.HierarchyLevelFromDomain(level))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.Conflict("hierarchy level rank already exists")
		}
		return nil, sourceError(err, "hierarchy level")
	}
	s.changed(ctx, "hierarchy_level", id, "replace")
	return replaced, nil
}

// DeleteLevel 不能刪除 team member level，也不能刪除仍有人使用的階層
func (s *AdminService) DeleteLevel(ctx context.Context, viewer healthcheck.User, id string) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.authorize(ctx, viewer, canConfigureSystem)
	if err != nil {
		return err
	}
	level, ok := snapshot.Directory().Level(id)
	if !ok {
		return cErr.NotFound("hierarchy level not found")
	}
	if level.IsTeamMemberLevel {
		return cErr.InvalidSetting("the team member level cannot be deleted")
	}
	inUse, err := s.userRepo.CountByLevel(ctx, id)
	if err != nil {
		return cErr.DatabaseError("database CountByLevel error")
	}
	if inUse > 0 {
		return cErr.Conflict("hierarchy level is still assigned to users")
	}
	if err := s.levelRepo.DeleteByID(ctx, id); err != nil {
		return sourceError(err, "hierarchy level")
	}
	s.changed(ctx, "hierarchy_level", id, "delete")
	return nil
}

// validateLevelChange 套用變更後整組階層仍須 rank 唯一且恰有一個 team member level
func validateLevelChange(current []healthcheck.HierarchyLevel, level healthcheck.HierarchyLevel, replacing string) error {
	var levels []healthcheck.HierarchyLevel
	if replacing == "" {
		levels = append(append(levels, current...), level)
	} else {
		levels = replaceLevel(current, level, replacing)
	}
	// 尚未設定 team member level 時允許逐筆建立
	if replacing == "" && !hasMemberLevel(levels) {
		return nil
	}
	if err := healthcheck.ValidateLevels(levels); err != nil {
		return cErr.FromDomain(err)
	}
	return nil
}

func replaceLevel(current []healthcheck.HierarchyLevel, level healthcheck.HierarchyLevel, id string) []healthcheck.HierarchyLevel {
	out := make([]healthcheck.HierarchyLevel, 0, len(current))
	for _, l := range current {
		if l.ID == id {
			out = append(out, level)
			continue
		}
		out = append(out, l)
	}
	return out
}

func hasMemberLevel(levels []healthcheck.HierarchyLevel) bool {
	for _, l := range levels {
		if l.IsTeamMemberLevel {
			return true
		}
	}
	return false
}

func reportsToLevel(u healthcheck.User, levelID string, dir *healthcheck.Directory) bool {
	if u.ReportsTo == "" {
		return false
	}
	manager, ok := dir.User(u.ReportsTo)
	return ok && manager.HierarchyLevelID == levelID
}
