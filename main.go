// @title EduFlow 后端 API
// @version 1.0
// @description EduFlow 作业协作平台的后端服务器。

// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token

package main

import (
	"eduflow_backend/internal/app"
	"eduflow_backend/internal/config"
	"eduflow_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
