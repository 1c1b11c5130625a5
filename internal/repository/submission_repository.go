package repository

import (
	"context"
	"eduflow_backend/internal/model"
	"eduflow_backend/internal/util"
	"eduflow_backend/pkg/database"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewSubmissionRepository(store *database.Store) *SubmissionRepository {
	return &SubmissionRepository{
		coll:    store.Collection(database.SubmissionCollection),
		timeout: store.Timeout,
	}
}

// EmailFilter 提交人统一使用 student_email 字段
func EmailFilter(email string) bson.M {
	return bson.M{"student_email": email}
}

func EmailStatusFilter(email, status string) bson.M {
	return bson.M{"student_email": email, "status": status}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) (*model.InsertResult, error) {
	ctx, finish := begin(ctx, r.timeout, database.SubmissionCollection, "insert")
	defer finish()

	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return &model.InsertResult{InsertedID: hexID(res.InsertedID)}, nil
}

func (r *SubmissionRepository) find(ctx context.Context, filter bson.M) ([]model.Submission, error) {
	ctx, finish := begin(ctx, r.timeout, database.SubmissionCollection, "find")
	defer finish()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find submissions: %w", err)
	}
	defer cursor.Close(ctx)

	submissions := []model.Submission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	return submissions, nil
}

func (r *SubmissionRepository) ListByEmail(ctx context.Context, email string) ([]model.Submission, error) {
	return r.find(ctx, EmailFilter(email))
}

func (r *SubmissionRepository) ListByEmailAndStatus(ctx context.Context, email, status string) ([]model.Submission, error) {
	return r.find(ctx, EmailStatusFilter(email, status))
}

func (r *SubmissionRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	ctx, finish := begin(ctx, r.timeout, database.SubmissionCollection, "count")
	defer finish()

	n, err := r.coll.CountDocuments(ctx, EmailFilter(email))
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, finish := begin(ctx, r.timeout, database.SubmissionCollection, "findOne")
	defer finish()

	var s model.Submission
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission %s: %w", id, err)
	}
	return &s, nil
}

// UpdateGrade 覆盖 status/obtained_marks/feedback，upsert 语义同作业更新
func (r *SubmissionRepository) UpdateGrade(ctx context.Context, id string, g model.GradeFields) (*model.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, finish := begin(ctx, r.timeout, database.SubmissionCollection, "update")
	defer finish()

	update := bson.M{
		"$set": bson.M{
			"status":         g.Status,
			"obtained_marks": g.ObtainedMarks,
			"feedback":       g.Feedback,
		},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("update submission %s: %w", id, err)
	}
	return toUpdateResult(res), nil
}
