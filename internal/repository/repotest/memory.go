// Package repotest 提供与 Mongo 仓储语义一致的内存实现，仅供测试使用
package repotest

import (
	"context"
	"eduflow_backend/internal/model"
	"eduflow_backend/internal/repository"
	"eduflow_backend/internal/util"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Err 不为 nil 时所有操作返回该错误，用于模拟存储故障
type AssignmentStore struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]model.Assignment
	order []primitive.ObjectID
	Err   error
}

func NewAssignmentStore() *AssignmentStore {
	return &AssignmentStore{docs: map[primitive.ObjectID]model.Assignment{}}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, util.ErrInvalidID
	}
	return oid, nil
}

func (s *AssignmentStore) Create(_ context.Context, a *model.Assignment) (*model.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	s.docs[a.ID] = *a
	s.order = append(s.order, a.ID)
	return &model.InsertResult{InsertedID: a.ID.Hex()}, nil
}

func (s *AssignmentStore) match(q repository.AssignmentQuery) []model.Assignment {
	search := strings.ToLower(q.Search)
	out := []model.Assignment{}
	for _, id := range s.order {
		a, ok := s.docs[id]
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(a.Title), search) {
			continue
		}
		if q.Difficulty != "" && string(a.Difficulty) != q.Difficulty {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *AssignmentStore) List(_ context.Context, q repository.AssignmentQuery) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := s.match(q)
	switch q.SortDirection() {
	case 1:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Deadline < out[j].Deadline })
	case -1:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Deadline > out[j].Deadline })
	}

	if q.Paginated() {
		if q.Skip() >= int64(len(out)) {
			return []model.Assignment{}, nil
		}
		start := int(q.Skip())
		end := start + q.Size
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, nil
}

func (s *AssignmentStore) Count(_ context.Context, q repository.AssignmentQuery) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.match(q))), nil
}

func (s *AssignmentStore) CountAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.docs)), nil
}

func (s *AssignmentStore) FindByID(_ context.Context, id string) (*model.Assignment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.docs[oid]
	if !ok {
		return nil, util.ErrAssignmentNotFound
	}
	return &a, nil
}

func (s *AssignmentStore) Update(_ context.Context, id string, f model.AssignmentFields) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	a, exists := s.docs[oid]
	before := a
	a.ID = oid
	a.Title = f.Title
	a.Difficulty = f.Difficulty
	a.Description = f.Description
	a.Marks = f.Marks
	a.Deadline = f.Deadline
	a.Photo = f.Photo
	s.docs[oid] = a

	if !exists {
		s.order = append(s.order, oid)
		return &model.UpdateResult{UpsertedCount: 1, UpsertedID: oid.Hex()}, nil
	}
	res := &model.UpdateResult{MatchedCount: 1}
	if before != a {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (s *AssignmentStore) Delete(_ context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.docs[oid]; !ok {
		return &model.DeleteResult{}, nil
	}
	delete(s.docs, oid)
	return &model.DeleteResult{DeletedCount: 1}, nil
}

type SubmissionStore struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]model.Submission
	order []primitive.ObjectID
	Err   error
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{docs: map[primitive.ObjectID]model.Submission{}}
}

func (s *SubmissionStore) Create(_ context.Context, sub *model.Submission) (*model.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	s.docs[sub.ID] = *sub
	s.order = append(s.order, sub.ID)
	return &model.InsertResult{InsertedID: sub.ID.Hex()}, nil
}

func (s *SubmissionStore) filter(keep func(model.Submission) bool) []model.Submission {
	out := []model.Submission{}
	for _, id := range s.order {
		if sub, ok := s.docs[id]; ok && keep(sub) {
			out = append(out, sub)
		}
	}
	return out
}

func (s *SubmissionStore) ListByEmail(_ context.Context, email string) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.filter(func(sub model.Submission) bool { return sub.StudentEmail == email }), nil
}

func (s *SubmissionStore) ListByEmailAndStatus(_ context.Context, email, status string) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.filter(func(sub model.Submission) bool {
		return sub.StudentEmail == email && string(sub.Status) == status
	}), nil
}

func (s *SubmissionStore) CountByEmail(_ context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.filter(func(sub model.Submission) bool { return sub.StudentEmail == email }))), nil
}

func (s *SubmissionStore) FindByID(_ context.Context, id string) (*model.Submission, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sub, ok := s.docs[oid]
	if !ok {
		return nil, util.ErrSubmissionNotFound
	}
	return &sub, nil
}

func (s *SubmissionStore) UpdateGrade(_ context.Context, id string, g model.GradeFields) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	sub, exists := s.docs[oid]
	before := sub
	sub.ID = oid
	sub.Status = g.Status
	sub.ObtainedMarks = g.ObtainedMarks
	sub.Feedback = g.Feedback
	s.docs[oid] = sub

	if !exists {
		s.order = append(s.order, oid)
		return &model.UpdateResult{UpsertedCount: 1, UpsertedID: oid.Hex()}, nil
	}
	res := &model.UpdateResult{MatchedCount: 1}
	if before != sub {
		res.ModifiedCount = 1
	}
	return res, nil
}

// CountCache 内存版作业总数缓存，记录调用次数便于断言
type CountCache struct {
	mu          sync.Mutex
	value       *int64
	Gets        int
	Invalidates int
	Err         error
}

func (c *CountCache) Get(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	if c.Err != nil {
		return 0, c.Err
	}
	if c.value == nil {
		return 0, repository.ErrCacheMiss
	}
	return *c.value, nil
}

func (c *CountCache) Set(_ context.Context, n int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.value = &n
	return nil
}

func (c *CountCache) SetIfAbsent(_ context.Context, n int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if c.value == nil {
		c.value = &n
	}
	return nil
}

func (c *CountCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidates++
	c.value = nil
	return nil
}

// Cached 返回当前缓存值
func (c *CountCache) Cached() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil {
		return 0, false
	}
	return *c.value, true
}

// ErrStore 模拟存储故障
var ErrStore = errors.New("store unavailable")
