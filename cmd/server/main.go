package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/codewright/backend/config"
	"github.com/codewright/backend/internal/eventbus"
	"github.com/codewright/backend/internal/handler"
	"github.com/codewright/backend/internal/pkg/database"
	"github.com/codewright/backend/internal/pkg/renderer"
	"github.com/codewright/backend/internal/repository"
	"github.com/codewright/backend/internal/router"
	"github.com/codewright/backend/internal/service"
	"github.com/codewright/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(cfg.Export.Dir, 0755); err != nil {
		log.Fatalf("Failed to create export directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	projectRepo := repository.NewProjectRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	jobRepo := repository.NewExportJobRepository(db)

	// 渲染后端：html 直出，pdf 走 chromium
	backends := map[string]renderer.Backend{
		"html": renderer.NewHTMLBackend(),
	}
	chromeBackend := renderer.NewChromeBackend(cfg.Export.ChromePath)
	if chromeBackend.Available() {
		backends["pdf"] = chromeBackend
	} else {
		klog.Warning("未找到 chromium，PDF 导出不可用")
	}

	// 初始化 Service
	mappingService := service.NewMappingService(mappingRepo)
	projectService := service.NewProjectService(projectRepo)
	manualService := service.NewManualService(projectRepo, sectionRepo)
	exportService := service.NewExportService(cfg, jobRepo, projectRepo, sectionRepo, mappingService, backends)

	// 事件总线：导出终态写审计日志
	bus := eventbus.NewBus()
	subscriber.NewExportEventSubscriber().Register(bus)
	exportService.SetEventBus(bus)

	// 首次启动写入默认后缀映射
	if err := mappingService.Seed(); err != nil {
		log.Fatalf("Failed to seed language mappings: %v", err)
	}

	// 导出是同步执行的，重启后还停在 processing 的任务都已中断
	if n, err := exportService.CleanupStuckJobs(); err != nil {
		klog.Errorf("清理中断任务失败: %v", err)
	} else if n > 0 {
		klog.V(6).Infof("已将 %d 个中断任务标记为失败", n)
	}

	// 初始化 Handler
	projectHandler := handler.NewProjectHandler(projectService)
	manualHandler := handler.NewManualHandler(manualService)
	exportHandler := handler.NewExportHandler(exportService)
	mappingHandler := handler.NewMappingHandler(mappingService)

	// 设置路由
	r := router.Setup(cfg, projectHandler, manualHandler, exportHandler, mappingHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
