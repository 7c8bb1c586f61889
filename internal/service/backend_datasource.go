package service

import (
	"context"
	"time"

	client "squadhealth/internal/database/client"
	"squadhealth/internal/healthcheck"
)

// BackendDataSource 透過外部 REST 後端讀寫，回應格式為 healthcheck 型別的 JSON 陣列
type BackendDataSource struct {
	backend *client.BackendClient
}

func NewBackendDataSource(backend *client.BackendClient) *BackendDataSource {
	return &BackendDataSource{backend: backend}
}

func (s *BackendDataSource) Dimensions(ctx context.Context) ([]healthcheck.Dimension, error) {
	var out []healthcheck.Dimension
	if err := s.backend.Get(ctx, "/dimensions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BackendDataSource) HierarchyLevels(ctx context.Context) ([]healthcheck.HierarchyLevel, error) {
	var out []healthcheck.HierarchyLevel
	if err := s.backend.Get(ctx, "/hierarchy-levels", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BackendDataSource) Users(ctx context.Context) ([]healthcheck.User, error) {
	var out []healthcheck.User
	if err := s.backend.Get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BackendDataSource) Teams(ctx context.Context) ([]healthcheck.Team, error) {
	var out []healthcheck.Team
	if err := s.backend.Get(ctx, "/teams", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BackendDataSource) Sessions(ctx context.Context, query SessionQuery) ([]healthcheck.Session, error) {
	params := map[string]string{
		"teamId": query.TeamID,
		"userId": query.UserID,
		"period": query.Period,
	}
	if !query.Since.IsZero() {
		params["since"] = query.Since.UTC().Format(time.RFC3339)
	}
	var out []healthcheck.Session
	if err := s.backend.Get(ctx, "/sessions", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BackendDataSource) CreateSession(ctx context.Context, session healthcheck.Session) (healthcheck.Session, error) {
	var created healthcheck.Session
	if err := s.backend.Post(ctx, "/sessions", session, &created); err != nil {
		if isBackendConflict(err) {
			return healthcheck.Session{}, ErrDuplicateSession
		}
		return healthcheck.Session{}, err
	}
	if created.ID == "" {
		// 後端只回 201 沒有 body
		return session, nil
	}
	return created, nil
}
