package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParsePositiveInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{" 25 ", 25, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
		{"ten", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParsePositiveInt(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePositiveInt(%q) 期望 (%d,%v)，实际=(%d,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestStoreError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrAssignmentNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", ErrSubmissionNotFound), http.StatusNotFound},
		{ErrInvalidID, http.StatusBadRequest},
		{fmt.Errorf("find assignments: %w", fmt.Errorf("connection reset")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		StoreError(c, tc.err)
		if w.Code != tc.code {
			t.Errorf("err=%v 期望 %d，实际=%d", tc.err, tc.code, w.Code)
		}

		var resp Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("响应解析失败: %v", err)
		}
		if resp.Code != tc.code {
			t.Errorf("响应体 code 期望 %d，实际=%d", tc.code, resp.Code)
		}
	}
}

type sample struct {
	Email      string `json:"email" binding:"required,email"`
	Difficulty string `json:"difficulty" binding:"oneof=easy medium hard"`
}

func TestValidationMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"email":"nope","difficulty":"extreme"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var s sample
	err := c.ShouldBindJSON(&s)
	if err == nil {
		t.Fatal("期望校验失败")
	}

	msg := ValidationMessage(err)
	if !strings.Contains(msg, "email must be a valid email") {
		t.Errorf("缺少 email 提示: %s", msg)
	}
	if !strings.Contains(msg, "difficulty must be one of [easy medium hard]") {
		t.Errorf("缺少 difficulty 提示: %s", msg)
	}

	if got := ValidationMessage(fmt.Errorf("unexpected EOF")); got != "invalid request body" {
		t.Errorf("非校验错误期望通用提示，实际=%s", got)
	}
}

func TestValidateMimeType(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	mime, err := ValidateMimeType(bytes.NewReader(png), []string{MimeImage})
	if err != nil || mime != "image/png" {
		t.Errorf("期望 image/png，实际=%s err=%v", mime, err)
	}

	if _, err := ValidateMimeType(strings.NewReader("hello"), []string{MimeImage}); err == nil {
		t.Error("文本内容应被拒绝")
	}

	if !IsAllowedImageExt("a.JPG") || IsAllowedImageExt("a.exe") {
		t.Error("扩展名过滤不正确")
	}
}
