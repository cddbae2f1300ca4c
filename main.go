// @title 软技能练习服务 API
// @version 1.0
// @description 软技能练习会话与进度追踪的后端服务。

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"

	"soft_skill_backend/internal/app"
	"soft_skill_backend/internal/config"
	"soft_skill_backend/pkg/configwatcher"
	"soft_skill_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移与种子数据，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	// 配置热更新（反馈网关设置）
	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
