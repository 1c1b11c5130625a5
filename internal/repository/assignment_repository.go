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

type AssignmentRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewAssignmentRepository(store *database.Store) *AssignmentRepository {
	return &AssignmentRepository{
		coll:    store.Collection(database.AssignmentCollection),
		timeout: store.Timeout,
	}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) (*model.InsertResult, error) {
	ctx, finish := begin(ctx, r.timeout, database.AssignmentCollection, "insert")
	defer finish()

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	return &model.InsertResult{InsertedID: hexID(res.InsertedID)}, nil
}

func (r *AssignmentRepository) List(ctx context.Context, q AssignmentQuery) ([]model.Assignment, error) {
	ctx, finish := begin(ctx, r.timeout, database.AssignmentCollection, "find")
	defer finish()

	cursor, err := r.coll.Find(ctx, q.Filter(), q.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("find assignments: %w", err)
	}
	defer cursor.Close(ctx)

	assignments := []model.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return assignments, nil
}

// Count 与 List 使用相同的过滤条件，忽略分页与排序
func (r *AssignmentRepository) Count(ctx context.Context, q AssignmentQuery) (int64, error) {
	ctx, finish := begin(ctx, r.timeout, database.AssignmentCollection, "count")
	defer finish()

	n, err := r.coll.CountDocuments(ctx, q.Filter())
	if err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return n, nil
}

func (r *AssignmentRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, finish := begin(ctx, r.timeout, database.AssignmentCollection, "count")
	defer finish()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count all assignments: %w", err)
	}
	return n, nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, finish := begin(ctx, r.timeout, database.AssignmentCollection, "findOne")
	defer finish()

	var a model.Assignment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("find assignment %s: %w", id, err)
	}
	return &a, nil
}

// Update 覆盖六个字段；文档不存在时按 upsert 新建
func (r *AssignmentRepository) Update(ctx context.Context, id string, f model.AssignmentFields) (*model.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, finish := begin(ctx, r.timeout, database.AssignmentCollection, "update")
	defer finish()

	update := bson.M{
		"$set": bson.M{
			"title":       f.Title,
			"difficulty":  f.Difficulty,
			"description": f.Description,
			"marks":       f.Marks,
			"deadline":    f.Deadline,
			"photo":       f.Photo,
		},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("update assignment %s: %w", id, err)
	}
	return toUpdateResult(res), nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, finish := begin(ctx, r.timeout, database.AssignmentCollection, "delete")
	defer finish()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("delete assignment %s: %w", id, err)
	}
	return &model.DeleteResult{DeletedCount: res.DeletedCount}, nil
}
