package database

import (
	"eduflow_backend/internal/config"
	"testing"
)

func TestInitRedis_Disabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: false})
	if err != nil || rdb != nil {
		t.Errorf("未启用时期望 (nil, nil)，实际=(%v, %v)", rdb, err)
	}
}

func TestInitRedis_UnreachableReturnsError(t *testing.T) {
	// 端口 1 上没有 redis，Ping 立即失败
	rdb, err := InitRedis(&config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1})
	if err == nil {
		t.Fatal("连接失败时期望返回错误")
	}
	if rdb != nil {
		t.Error("连接失败时不应返回客户端")
	}
}
