package service

import (
	"context"

	"squadhealth/internal/core"
	"squadhealth/internal/database/mongodb/model"
	"squadhealth/internal/database/mongodb/repository"
	"squadhealth/internal/healthcheck"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDataSource struct {
	dimensionRepo *repository.DimensionRepository
	levelRepo     *repository.HierarchyLevelRepository
	userRepo      *repository.UserRepository
	teamRepo      *repository.TeamRepository
	sessionRepo   *repository.HealthCheckSessionRepository
}

func NewMongoDataSource(
	dimensionRepo *repository.DimensionRepository,
	levelRepo *repository.HierarchyLevelRepository,
	userRepo *repository.UserRepository,
	teamRepo *repository.TeamRepository,
	sessionRepo *repository.HealthCheckSessionRepository,
) *MongoDataSource {
	return &MongoDataSource{
		dimensionRepo: dimensionRepo,
		levelRepo:     levelRepo,
		userRepo:      userRepo,
		teamRepo:      teamRepo,
		sessionRepo:   sessionRepo,
	}
}

func (s *MongoDataSource) Dimensions(ctx context.Context) ([]healthcheck.Dimension, error) {
	docs, err := s.dimensionRepo.List(ctx, core.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]healthcheck.Dimension, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ToDomain())
	}
	return out, nil
}

func (s *MongoDataSource) HierarchyLevels(ctx context.Context) ([]healthcheck.HierarchyLevel, error) {
	docs, err := s.levelRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]healthcheck.HierarchyLevel, 0, len(docs))
	for _, l := range docs {
		out = append(out, l.ToDomain())
	}
	return out, nil
}

func (s *MongoDataSource) Users(ctx context.Context) ([]healthcheck.User, error) {
	docs, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]healthcheck.User, 0, len(docs))
	for _, u := range docs {
		out = append(out, u.ToDomain())
	}
	return out, nil
}

func (s *MongoDataSource) Teams(ctx context.Context) ([]healthcheck.Team, error) {
	docs, err := s.teamRepo.List(ctx, core.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]healthcheck.Team, 0, len(docs))
	for _, t := range docs {
		out = append(out, t.ToDomain())
	}
	return out, nil
}

func (s *MongoDataSource) Sessions(ctx context.Context, query SessionQuery) ([]healthcheck.Session, error) {
	filter := repository.SessionFilter{Period: query.Period}
	if query.TeamID != "" {
		id, err := primitive.ObjectIDFromHex(query.TeamID)
		if err != nil {
			// 非法 id 不可能對到任何紀錄
			return []healthcheck.Session{}, nil
		}
		filter.TeamID = &id
	}
	if query.UserID != "" {
		id, err := primitive.ObjectIDFromHex(query.UserID)
		if err != nil {
			return []healthcheck.Session{}, nil
		}
		filter.UserID = &id
	}
	if !query.Since.IsZero() {
		since := query.Since
		filter.From = &since
	}

	docs, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]healthcheck.Session, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ToDomain())
	}
	return out, nil
}

func (s *MongoDataSource) CreateSession(ctx context.Context, session healthcheck.Session) (healthcheck.Session, error) {
	doc, err := model.SessionFromDomain(session)
	if err != nil {
		return healthcheck.Session{}, err
	}
	created, err := s.sessionRepo.Create(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return healthcheck.Session{}, ErrDuplicateSession
		}
		return healthcheck.Session{}, err
	}
	return created.ToDomain(), nil
}

