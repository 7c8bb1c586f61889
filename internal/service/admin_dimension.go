package service

import (
	"context"

	"squadhealth/internal/core"
	"squadhealth/internal/database/mongodb/model"
	"squadhealth/internal/dto"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListDimensions 含停用中的維度
func (s *AdminService) ListDimensions(ctx context.Context, viewer healthcheck.User) (_ []*model.Dimension, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canConfigureSystem); err != nil {
		return nil, err
	}
	dimensions, err := s.dimensionRepo.List(ctx, core.ListOptions{})
	if err != nil {
		return nil, cErr.DatabaseError("database ListDimensions error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceAdminListMeta{Resource: "dimensions", ResultCount: len(dimensions)})
	return dimensions, nil
}

func (s *AdminService) CreateDimension(ctx context.Context, viewer healthcheck.User, req *dto.CreateDimensionDto) (_ *model.Dimension, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canConfigureSystem); err != nil {
		return nil, err
	}
	dimension := req.ToDomain()
	if err := dimension.Validate(); err != nil {
		return nil, cErr.FromDomain(err)
	}
	created, err := s.dimensionRepo.Create(ctx, model.DimensionFromDomain(dimension, req.SortOrder))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.Conflict("dimension id already exists")
		}
		return nil, cErr.DatabaseError("database CreateDimension error")
	}
	s.changed(ctx, "dimension", created.ID, "create")
	return created, nil
}

func (s *AdminService) UpdateDimension(ctx context.Context, viewer healthcheck.User, id string, req *dto.UpdateDimensionDto) (_ *model.Dimension, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canConfigureSystem); err != nil {
		return nil, err
	}
	current, err := s.dimensionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, sourceError(err, "dimension")
	}

	setFields := bson.M{}
	merged := current.ToDomain()
	if req.Name != nil {
		setFields["name"] = *req.Name
	}
	if req.Description != nil {
		setFields["description"] = *req.Description
	}
	if req.GoodDescription != nil {
		setFields["goodDescription"] = *req.GoodDescription
	}
	if req.BadDescription != nil {
		setFields["badDescription"] = *req.BadDescription
	}
	if req.IsActive != nil {
		setFields["isActive"] = *req.IsActive
		merged.IsActive = *req.IsActive
	}
	if req.Weight != nil {
		setFields["weight"] = *req.Weight
		merged.Weight = *req.Weight
	}
	if req.SortOrder != nil {
		setFields["sortOrder"] = *req.SortOrder
	}
	if len(setFields) == 0 {
		return current, nil
	}
	if err := merged.Validate(); err != nil {
		return nil, cErr.FromDomain(err)
	}

	if _, err := s.dimensionRepo.UpdateByID(ctx, id, setFields); err != nil {
		return nil, sourceError(err, "dimension")
	}
	s.changed(ctx, "dimension", id, "update")
	updated, err := s.dimensionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, sourceError(err, "dimension")
	}
	return updated, nil
}

// DeleteDimension 歷史紀錄仍可透過 Unknown dimension 顯示
func (s *AdminService) DeleteDimension(ctx context.Context, viewer healthcheck.User, id string) (returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	if _, err := s.authorize(ctx, viewer, canConfigureSystem); err != nil {
		return err
	}
	if err := s.dimensionRepo.DeleteByID(ctx, id); err != nil {
		return sourceError(err, "dimension")
	}
	s.changed(ctx, "dimension", id, "delete")
	return nil
}
