package service

import (
	"context"

	"squadhealth/internal/core"
	"squadhealth/internal/database/mongodb/model"
	"squadhealth/internal/dto"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *AdminService) ListUsers(ctx context.Context, viewer healthcheck.User, query dto.ListQueryDto) (_ *dto.ListResponseDto[healthcheck.User], returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canManageUsers); err != nil {
		return nil, err
	}
	opts := listOptions(query)
	users, err := s.userRepo.List(ctx, opts)
	if err != nil {
		return nil, cErr.DatabaseError("database ListUsers error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceAdminListMeta{
		Resource:    "users",
		Page:        opts.Page + 1,
		Size:        opts.Size,
		ResultCount: len(users),
	})

	items := make([]healthcheck.User, 0, len(users))
	for _, u := range users {
		items = append(items, u.ToDomain())
	}
	return &dto.ListResponseDto[healthcheck.User]{Items: items, Page: opts.Page + 1, Size: opts.Size}, nil
}

func (s *AdminService) CreateUser(ctx context.Context, viewer healthcheck.User, req *dto.UpsertUserDto) (_ *healthcheck.User, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.authorize(ctx, viewer, canManageUsers)
	if err != nil {
		return nil, err
	}
	user := req.ToDomain(primitive.NewObjectID().Hex())
	if err := validateUserChange(snapshot, user); err != nil {
		return nil, err
	}
	doc, err := model.UserFromDomain(user)
	if err != nil {
		return nil, cErr.ValidateErr(err.Error())
	}
	doc.Email = req.Email

	created, err := s.userRepo.Create(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.Conflict("username already exists")
		}
		return nil, cErr.DatabaseError("database CreateUser error")
	}
	s.changed(ctx, "user", created.ID.Hex(), "create")
	out := created.ToDomain()
	return &out, nil
}

func (s *AdminService) ReplaceUser(ctx context.Context, viewer healthcheck.User, id primitive.ObjectID, req *dto.UpsertUserDto) (_ *healthcheck.User, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	snapshot, err := s.authorize(ctx, viewer, canManageUsers)
	if err != nil {
		return nil, err
	}
	if _, ok := snapshot.Directory().User(id.Hex()); !ok {
		return nil, cErr.NotFound("user not found")
	}
	user := req.ToDomain(id.Hex())
	if err := validateUserChange(snapshot, user); err != nil {
		return nil, err
	}
	doc, err := model.UserFromDomain(user)
	if err != nil {
		return nil, cErr.ValidateErr(err.Error())
	}
	doc.Email = req.Email

	replaced, err := s.userRepo.Replace(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.Conflict("username already exists")
		}
		return nil, sourceError(err, "user")
	}
	s.changed(ctx, "user", id.Hex(), "replace")
	out := replaced.ToDomain()
	return &out, nil
}

// DeleteUser 仍有直屬部屬時拒絕，避免留下懸空的 reportsTo
func (s *AdminService) DeleteUser(ctx context.Context, viewer healthcheck.User, id primitive.ObjectID) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canManageUsers); err != nil {
		return err
	}
	if id.Hex() == viewer.ID {
		return cErr.Conflict("cannot delete the current user")
	}
	reports, err := s.userRepo.CountReports(ctx, id)
	if err != nil {
		return cErr.DatabaseError("database CountReports error")
	}
	if reports > 0 {
		return cErr.HierarchyIntegrity("user still has direct reports")
	}
	if err := s.userRepo.DeleteByID(ctx, id); err != nil {
		return sourceError(err, "user")
	}
	s.changed(ctx, "user", id.Hex(), "delete")
	return nil
}

// validateUserChange 套用變更後，使用者本身與其直屬部屬的匯報關係都必須合法
func validateUserChange(snapshot *Snapshot, user healthcheck.User) error {
	users := make([]healthcheck.User, 0, len(snapshot.Users)+1)
	replaced := false
	for _, u := range snapshot.Users {
		if u.ID == user.ID {
			users = append(users, user)
			replaced = true
			continue
		}
		users = append(users, u)
	}
	if !replaced {
		users = append(users, user)
	}
	dir := healthcheck.NewDirectory(snapshot.Levels, users, snapshot.Teams)

	if _, ok := dir.Level(user.HierarchyLevelID); !ok {
		return cErr.NotFound("hierarchy level not found")
	}
	for _, teamID := range user.TeamIDs {
		if _, ok := dir.Team(teamID); !ok {
			return cErr.NotFound("team " + teamID + " not found")
		}
	}
	// 匯報鏈不得繞回自己
	if looped, err := dir.IsSuperiorOf(user.ID, user.ID); err != nil || looped {
		return cErr.HierarchyCycleDetected("reports-to chain of " + user.ID + " loops back to itself")
	}
	if err := dir.ValidateReportsTo(user); err != nil {
		return cErr.FromDomain(err)
	}
	for _, report := range dir.DirectReports(user.ID) {
		if err := dir.ValidateReportsTo(report); err != nil {
			return cErr.FromDomain(err)
		}
	}
	return nil
}
