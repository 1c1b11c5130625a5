package service

import (
	"context"
	"eduflow_backend/internal/model"
	"math"
	"time"
)

type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) (*model.InsertResult, error)
	ListByEmail(ctx context.Context, email string) ([]model.Submission, error)
	ListByEmailAndStatus(ctx context.Context, email, status string) ([]model.Submission, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	UpdateGrade(ctx context.Context, id string, g model.GradeFields) (*model.UpdateResult, error)
}

type SubmissionService struct {
	repo        SubmissionStore
	assignments *AssignmentService
}

func NewSubmissionService(repo SubmissionStore, assignments *AssignmentService) *SubmissionService {
	return &SubmissionService{repo: repo, assignments: assignments}
}

func (s *SubmissionService) Create(ctx context.Context, sub *model.Submission) (*model.InsertResult, error) {
	if sub.Status == "" {
		sub.Status = model.StatusPending
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}
	return s.repo.Create(ctx, sub)
}

func (s *SubmissionService) ListByEmail(ctx context.Context, email string) ([]model.Submission, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *SubmissionService) ListByEmailAndStatus(ctx context.Context, email, status string) ([]model.Submission, error) {
	return s.repo.ListByEmailAndStatus(ctx, email, status)
}

func (s *SubmissionService) Get(ctx context.Context, id string) (*model.Submission, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SubmissionService) UpdateGrade(ctx context.Context, id string, g model.GradeFields) (*model.UpdateResult, error) {
	return s.repo.UpdateGrade(ctx, id, g)
}

// CompletionPercentage = 100 * 提交数 / 作业总数，保留两位小数；没有作业时为 0
func (s *SubmissionService) CompletionPercentage(ctx context.Context, email string) (*model.Completion, error) {
	total, err := s.assignments.Total(ctx)
	if err != nil {
		return nil, err
	}
	submitted, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return &model.Completion{
		Percentage: Percentage(submitted, total),
		Submitted:  submitted,
		Total:      total,
	}, nil
}

func Percentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)*100/float64(total)*100) / 100
}
