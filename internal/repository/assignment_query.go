package repository

import (
	"eduflow_backend/internal/util"
	"math"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssignmentQuery 描述 /all-assignment 与 /assignment-count 的查询条件。
// Page 从 1 开始；Page 或 Size 小于 1 时不分页，返回完整的过滤排序结果。
type AssignmentQuery struct {
	Page       int
	Size       int
	Difficulty string
	Sort       string
	Search     string
}

// NewAssignmentQuery 从原始查询参数构造，非法的 page/size 视为未传
func NewAssignmentQuery(page, size, difficulty, sort, search string) AssignmentQuery {
	q := AssignmentQuery{
		Difficulty: strings.TrimSpace(difficulty),
		Sort:       strings.ToLower(strings.TrimSpace(sort)),
		Search:     strings.TrimSpace(search),
	}
	p, okPage := util.ParsePositiveInt(page)
	s, okSize := util.ParsePositiveInt(size)
	if okPage && okSize {
		if s > util.MaxPageSize {
			s = util.MaxPageSize
		}
		q.Page, q.Size = p, s
	}
	return q
}

func (q AssignmentQuery) Paginated() bool {
	return q.Page >= 1 && q.Size >= 1
}

// Skip 超出 int64 范围时取 math.MaxInt64，结果为空页而不是负数偏移
func (q AssignmentQuery) Skip() int64 {
	if !q.Paginated() {
		return 0
	}
	if int64(q.Page-1) > math.MaxInt64/int64(q.Size) {
		return math.MaxInt64
	}
	return int64(q.Page-1) * int64(q.Size)
}

// SortDirection 返回 1（升序）、-1（降序）或 0（不排序）
func (q AssignmentQuery) SortDirection() int {
	switch q.Sort {
	case util.SortAsc:
		return 1
	case util.SortDesc, util.SortDsc:
		return -1
	}
	return 0
}

// Filter 标题不区分大小写包含 Search，Difficulty 非空时精确匹配
func (q AssignmentQuery) Filter() bson.M {
	filter := bson.M{
		"title": primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"},
	}
	if q.Difficulty != "" {
		filter["difficulty"] = q.Difficulty
	}
	return filter
}

func (q AssignmentQuery) FindOptions() *options.FindOptions {
	opts := options.Find()
	if dir := q.SortDirection(); dir != 0 {
		opts.SetSort(bson.D{{Key: "deadline", Value: dir}})
	}
	if q.Paginated() {
		opts.SetSkip(q.Skip()).SetLimit(int64(q.Size))
	}
	return opts
}
