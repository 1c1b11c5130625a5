package repository

import (
	"eduflow_backend/internal/util"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := parseObjectID(oid.Hex())
	if err != nil || got != oid {
		t.Fatalf("合法 ID 解析失败: %v", err)
	}

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", oid.Hex() + "00"} {
		if _, err := parseObjectID(bad); err != util.ErrInvalidID {
			t.Errorf("id=%q 期望 ErrInvalidID，实际=%v", bad, err)
		}
	}
}

func TestToUpdateResult(t *testing.T) {
	oid := primitive.NewObjectID()
	res := toUpdateResult(&mongo.UpdateResult{UpsertedCount: 1, UpsertedID: oid})
	if res.UpsertedID != oid.Hex() || res.UpsertedCount != 1 || res.MatchedCount != 0 {
		t.Errorf("upsert 结果转换不正确: %+v", res)
	}

	res = toUpdateResult(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1})
	if res.UpsertedID != "" || res.MatchedCount != 1 || res.ModifiedCount != 1 {
		t.Errorf("更新结果转换不正确: %+v", res)
	}
}

func TestSubmissionFilters(t *testing.T) {
	f := EmailFilter("alice@example.com")
	if len(f) != 1 || f["student_email"] != "alice@example.com" {
		t.Errorf("邮箱过滤条件不正确: %v", f)
	}

	f = EmailStatusFilter("alice@example.com", "pending")
	if len(f) != 2 || f["student_email"] != "alice@example.com" || f["status"] != "pending" {
		t.Errorf("邮箱+状态过滤条件不正确: %v", f)
	}
	if _, has := f["email"]; has {
		t.Error("不应再使用旧字段 email")
	}
}
