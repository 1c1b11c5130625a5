package service

import (
	"context"
	"eduflow_backend/internal/model"
	"eduflow_backend/internal/repository"
	"eduflow_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
)

type AssignmentStore interface {
	Create(ctx context.Context, a *model.Assignment) (*model.InsertResult, error)
	List(ctx context.Context, q repository.AssignmentQuery) ([]model.Assignment, error)
	Count(ctx context.Context, q repository.AssignmentQuery) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
	Update(ctx context.Context, id string, f model.AssignmentFields) (*model.UpdateResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

// CountCache 可选的作业总数缓存，未命中时返回 repository.ErrCacheMiss
type CountCache interface {
	Get(ctx context.Context) (int64, error)
	Set(ctx context.Context, n int64) error
	SetIfAbsent(ctx context.Context, n int64) error
	Invalidate(ctx context.Context) error
}

type AssignmentService struct {
	repo  AssignmentStore
	cache CountCache
}

func NewAssignmentService(repo AssignmentStore, cache CountCache) *AssignmentService {
	return &AssignmentService{repo: repo, cache: cache}
}

func (s *AssignmentService) Create(ctx context.Context, a *model.Assignment) (*model.InsertResult, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	res, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.refreshCount(ctx)
	return res, nil
}

func (s *AssignmentService) ListAll(ctx context.Context) ([]model.Assignment, error) {
	return s.repo.List(ctx, repository.AssignmentQuery{})
}

func (s *AssignmentService) ListPage(ctx context.Context, q repository.AssignmentQuery) ([]model.Assignment, error) {
	return s.repo.List(ctx, q)
}

func (s *AssignmentService) Count(ctx context.Context, q repository.AssignmentQuery) (int64, error) {
	return s.repo.Count(ctx, q)
}

func (s *AssignmentService) Get(ctx context.Context, id string) (*model.Assignment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AssignmentService) Update(ctx context.Context, id string, f model.AssignmentFields) (*model.UpdateResult, error) {
	res, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if res.UpsertedCount > 0 {
		logger.Log.Warn("assignment update created a new document", zap.String("id", id))
		s.refreshCount(ctx)
	}
	return res, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount > 0 {
		s.refreshCount(ctx)
	}
	return res, nil
}

// Total 返回作业总数，启用缓存时优先读缓存，缓存故障不影响结果
func (s *AssignmentService) Total(ctx context.Context) (int64, error) {
	if s.cache != nil {
		n, err := s.cache.Get(ctx)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			logger.Log.Warn("read assignment count cache failed", zap.Error(err))
		}
	}

	n, err := s.repo.CountAll(ctx)
	if err != nil {
		return 0, err
	}

	// 读路径只回填空缺，不覆盖并发写操作刚写入的值
	if s.cache != nil {
		if err := s.cache.SetIfAbsent(ctx, n); err != nil {
			logger.Log.Warn("write assignment count cache failed", zap.Error(err))
		}
	}
	return n, nil
}

// refreshCount 写操作后直接写入最新总数；计数失败时删除缓存
func (s *AssignmentService) refreshCount(ctx context.Context) {
	if s.cache == nil {
		return
	}
	n, err := s.repo.CountAll(ctx)
	if err != nil {
		logger.Log.Warn("recount assignments failed", zap.Error(err))
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Log.Warn("invalidate assignment count cache failed", zap.Error(err))
		}
		return
	}
	if err := s.cache.Set(ctx, n); err != nil {
		logger.Log.Warn("write assignment count cache failed", zap.Error(err))
	}
}
