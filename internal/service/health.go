package service

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pinger 可以探測連線狀態的依賴 (mongo / redis)
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	live  atomic.Bool
	ready atomic.Bool
	deps  map[string]Pinger
}

func NewHealthService(deps map[string]Pinger) *HealthService {
	s := &HealthService{deps: deps}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// CheckDependencies 並行 ping 所有依賴，回傳每個依賴的錯誤訊息（正常為空字串）
func (s *HealthService) CheckDependencies(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	results := make(map[string]string, len(s.deps))
	errs := make([]error, len(s.deps))
	names := make([]string, 0, len(s.deps))
	for name := range s.deps {
		names = append(names, name)
	}

	var g errgroup.Group
	for i, name := range names {
		pinger := s.deps[name]
		g.Go(func() error {
			errs[i] = pinger.Ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	healthy := true
	for i, name := range names {
		results[name] = ""
		if errs[i] != nil {
			results[name] = errs[i].Error()
			healthy = false
		}
	}
	return results, healthy
}
