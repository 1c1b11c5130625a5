package util

import (
	"strconv"
	"strings"
)

// ParsePositiveInt 解析正整数，空串、非数字或小于 1 时返回 ok=false
func ParsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
