package repository

import (
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewAssignmentQuery_Pagination(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		size      string
		paginated bool
		skip      int64
		limit     int
	}{
		{"第一页", "1", "10", true, 0, 10},
		{"第二页", "2", "10", true, 10, 10},
		{"第三页小尺寸", "3", "4", true, 8, 4},
		{"缺少 page", "", "10", false, 0, 0},
		{"缺少 size", "2", "", false, 0, 0},
		{"page 为 0", "0", "10", false, 0, 0},
		{"size 为负数", "1", "-5", false, 0, 0},
		{"非数字", "abc", "10", false, 0, 0},
		{"size 超过上限", "1", "500", true, 0, 100},
		{"page 极大不溢出", "9223372036854775807", "100", true, math.MaxInt64, 100},
		{"page 与 size 乘积溢出", "4611686018427387904", "3", true, math.MaxInt64, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewAssignmentQuery(tc.page, tc.size, "", "", "")
			if q.Paginated() != tc.paginated {
				t.Fatalf("期望 Paginated=%v，实际=%v", tc.paginated, q.Paginated())
			}
			if q.Skip() != tc.skip {
				t.Errorf("期望 Skip=%d，实际=%d", tc.skip, q.Skip())
			}
			if tc.paginated && q.Size != tc.limit {
				t.Errorf("期望 Size=%d，实际=%d", tc.limit, q.Size)
			}

			opts := q.FindOptions()
			if tc.paginated {
				if opts.Skip == nil || *opts.Skip != tc.skip {
					t.Errorf("FindOptions.Skip 不正确: %v", opts.Skip)
				}
				if opts.Limit == nil || *opts.Limit != int64(tc.limit) {
					t.Errorf("FindOptions.Limit 不正确: %v", opts.Limit)
				}
			} else if opts.Skip != nil || opts.Limit != nil {
				t.Error("不分页时不应设置 Skip/Limit")
			}
		})
	}
}

func TestAssignmentQuery_Filter(t *testing.T) {
	q := NewAssignmentQuery("", "", " medium ", "", "Binary")
	filter := q.Filter()

	re, ok := filter["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("title 条件应为正则，实际=%T", filter["title"])
	}
	if re.Pattern != "Binary" || re.Options != "i" {
		t.Errorf("正则不正确: %+v", re)
	}
	if filter["difficulty"] != "medium" {
		t.Errorf("期望 difficulty=medium，实际=%v", filter["difficulty"])
	}
}

func TestAssignmentQuery_FilterEscapesSearch(t *testing.T) {
	q := NewAssignmentQuery("", "", "", "", "a.b(c)*")
	re := q.Filter()["title"].(primitive.Regex)
	if re.Pattern != `a\.b\(c\)\*` {
		t.Errorf("搜索词应被转义，实际=%s", re.Pattern)
	}

	empty := NewAssignmentQuery("", "", "", "", "")
	if _, has := empty.Filter()["difficulty"]; has {
		t.Error("未传 filter 时不应包含 difficulty 条件")
	}
	if empty.Filter()["title"].(primitive.Regex).Pattern != "" {
		t.Error("空搜索应匹配全部")
	}
}

func TestAssignmentQuery_Sort(t *testing.T) {
	cases := map[string]int{
		"asc":  1,
		"ASC":  1,
		"dsc":  -1,
		"desc": -1,
		"":     0,
		"up":   0,
	}
	for in, want := range cases {
		q := NewAssignmentQuery("", "", "", in, "")
		if got := q.SortDirection(); got != want {
			t.Errorf("sort=%q 期望 %d，实际=%d", in, want, got)
		}

		opts := q.FindOptions()
		if want == 0 {
			if opts.Sort != nil {
				t.Errorf("sort=%q 不应设置排序", in)
			}
			continue
		}
		sortDoc, ok := opts.Sort.(bson.D)
		if !ok || len(sortDoc) != 1 || sortDoc[0].Key != "deadline" || sortDoc[0].Value != want {
			t.Errorf("sort=%q 排序文档不正确: %v", in, opts.Sort)
		}
	}
}
