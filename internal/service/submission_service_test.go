package service

import (
	"context"
	"eduflow_backend/internal/model"
	"eduflow_backend/internal/repository/repotest"
	"eduflow_backend/internal/util"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newSubmissionFixture() (*AssignmentService, *SubmissionService) {
	assignments := NewAssignmentService(repotest.NewAssignmentStore(), nil)
	return assignments, NewSubmissionService(repotest.NewSubmissionStore(), assignments)
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		part, total int64
		want        float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 4, 0},
		{4, 4, 100},
		{2, 3, 66.67},
		{1, 3, 33.33},
		{1, 8, 12.5},
	}
	for _, tc := range cases {
		if got := Percentage(tc.part, tc.total); got != tc.want {
			t.Errorf("Percentage(%d, %d) 期望 %v，实际=%v", tc.part, tc.total, tc.want, got)
		}
	}
}

func TestSubmissionService_CreateDefaults(t *testing.T) {
	_, svc := newSubmissionFixture()
	ctx := context.Background()

	res, err := svc.Create(ctx, &model.Submission{StudentEmail: "a@example.com", Title: "Binary Search"})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	got, err := svc.Get(ctx, res.InsertedID)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if got.Status != model.StatusPending {
		t.Errorf("默认状态应为 pending，实际=%s", got.Status)
	}
	if got.SubmittedAt.IsZero() {
		t.Error("SubmittedAt 应被自动设置")
	}
	if got.StudentEmail != "a@example.com" || got.Title != "Binary Search" {
		t.Errorf("读取结果与写入不一致: %+v", got)
	}
}

func TestSubmissionService_ListByEmailAndStatus(t *testing.T) {
	_, svc := newSubmissionFixture()
	ctx := context.Background()

	svc.Create(ctx, &model.Submission{StudentEmail: "a@example.com"})
	svc.Create(ctx, &model.Submission{StudentEmail: "a@example.com", Status: model.StatusCompleted})
	svc.Create(ctx, &model.Submission{StudentEmail: "b@example.com"})

	list, _ := svc.ListByEmail(ctx, "a@example.com")
	if len(list) != 2 {
		t.Errorf("a 的提交期望 2 条，实际=%d", len(list))
	}

	pending, _ := svc.ListByEmailAndStatus(ctx, "a@example.com", "pending")
	if len(pending) != 1 || pending[0].Status != model.StatusPending {
		t.Errorf("a 的 pending 提交期望 1 条，实际=%v", pending)
	}

	none, _ := svc.ListByEmail(ctx, "c@example.com")
	if none == nil || len(none) != 0 {
		t.Errorf("无提交时应返回空切片，实际=%v", none)
	}
}

func TestSubmissionService_UpdateGrade(t *testing.T) {
	_, svc := newSubmissionFixture()
	ctx := context.Background()

	res, _ := svc.Create(ctx, &model.Submission{StudentEmail: "a@example.com", Title: "T", Note: "n"})
	upd, err := svc.UpdateGrade(ctx, res.InsertedID, model.GradeFields{
		Status:        model.StatusCompleted,
		ObtainedMarks: 87,
		Feedback:      "good",
	})
	if err != nil || upd.MatchedCount != 1 {
		t.Fatalf("UpdateGrade 失败: %v %+v", err, upd)
	}

	got, _ := svc.Get(ctx, res.InsertedID)
	if got.Status != model.StatusCompleted || got.ObtainedMarks != 87 || got.Feedback != "good" {
		t.Errorf("评分字段未更新: %+v", got)
	}
	if got.Title != "T" || got.Note != "n" || got.StudentEmail != "a@example.com" {
		t.Errorf("非评分字段不应改变: %+v", got)
	}

	missing := primitive.NewObjectID().Hex()
	upd, err = svc.UpdateGrade(ctx, missing, model.GradeFields{Status: model.StatusCompleted})
	if err != nil || upd.UpsertedID != missing {
		t.Errorf("不存在的提交应按 upsert 新建: %v %+v", err, upd)
	}
}

func TestSubmissionService_GetMissing(t *testing.T) {
	_, svc := newSubmissionFixture()
	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, util.ErrSubmissionNotFound) {
		t.Errorf("期望 ErrSubmissionNotFound，实际=%v", err)
	}
}

func TestSubmissionService_CompletionPercentage(t *testing.T) {
	assignments, svc := newSubmissionFixture()
	ctx := context.Background()

	c, err := svc.CompletionPercentage(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("CompletionPercentage 失败: %v", err)
	}
	if c.Percentage != 0 || c.Total != 0 {
		t.Errorf("没有作业时完成率应为 0，实际=%+v", c)
	}

	const n = 3
	for i := 0; i < n; i++ {
		assignments.Create(ctx, &model.Assignment{Title: "A"})
	}
	svc.Create(ctx, &model.Submission{StudentEmail: "a@example.com"})
	svc.Create(ctx, &model.Submission{StudentEmail: "a@example.com"})
	svc.Create(ctx, &model.Submission{StudentEmail: "b@example.com"})

	c, _ = svc.CompletionPercentage(ctx, "a@example.com")
	if c.Percentage != 66.67 || c.Submitted != 2 || c.Total != n {
		t.Errorf("期望 66.67%%，实际=%+v", c)
	}

	svc.Create(ctx, &model.Submission{StudentEmail: "a@example.com"})
	c, _ = svc.CompletionPercentage(ctx, "a@example.com")
	if c.Percentage != 100 {
		t.Errorf("全部提交后期望 100，实际=%v", c.Percentage)
	}
}

func TestSubmissionService_CompletionPercentageStoreError(t *testing.T) {
	store := repotest.NewAssignmentStore()
	store.Err = repotest.ErrStore
	svc := NewSubmissionService(repotest.NewSubmissionStore(), NewAssignmentService(store, nil))

	if _, err := svc.CompletionPercentage(context.Background(), "a@example.com"); !errors.Is(err, repotest.ErrStore) {
		t.Errorf("存储故障应向上返回，实际=%v", err)
	}
}
