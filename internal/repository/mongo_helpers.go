package repository

import (
	"context"
	"eduflow_backend/internal/model"
	"eduflow_backend/internal/util"
	"eduflow_backend/pkg/tracing"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// begin 为一次存储操作设置超时并开启 span，调用方 defer 返回的 finish
func begin(ctx context.Context, timeout time.Duration, collection, op string) (context.Context, func()) {
	ctx, span := tracing.StartSpan(ctx, collection, op)
	var cancel context.CancelFunc
	if timeout <= 0 {
		ctx, cancel = context.WithCancel(ctx)
	} else {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {
		cancel()
		span.End()
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, util.ErrInvalidID
	}
	return oid, nil
}

func hexID(v interface{}) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func toUpdateResult(res *mongo.UpdateResult) *model.UpdateResult {
	return &model.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}
}
