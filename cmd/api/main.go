package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snap-report-api/config"
	"snap-report-api/controllers"
	"snap-report-api/routes"
	"snap-report-api/services"
	"snap-report-api/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Load()
	if err := cfg.EnsureDirs(); err != nil {
		log.Fatalf("❌ Failed to create directories: %v", err)
	}

	repo, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Fatalf("❌ Failed to open data file: %v", err)
	}

	// Report files left behind by a crash between file write and snapshot
	// write; they are never cleaned up automatically.
	repo.LogOrphans(cfg.ImagesDir(), cfg.VideosDir())

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(cors.Default())
	router.MaxMultipartMemory = 32 << 20

	// Uploaded media and the admin dashboard are served statically.
	router.Static("/uploads", cfg.UploadBaseDir)
	if info, err := os.Stat(cfg.AdminDir); err == nil && info.IsDir() {
		router.Static("/admin", cfg.AdminDir)
	}

	exporter := services.NewExporter()
	notifier := services.NewNotifier(cfg)
	if notifier == nil {
		log.Println("Submission mail notifications disabled (SMTP/ADMIN_NOTIFY_EMAIL not set)")
	}

	routes.SetupRoutes(router,
		controllers.NewSubmissionController(repo, cfg, notifier),
		controllers.NewAdminController(repo),
		controllers.NewExportController(repo, exporter, cfg),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 随手拍后台服务器启动成功，端口 %s", cfg.ServerPort)
		log.Printf("📁 上传目录: %s", cfg.UploadBaseDir)
		log.Printf("💾 数据文件: %s", cfg.DataFile)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	// Final snapshot write before exit.
	if err := repo.Save(); err != nil {
		log.Printf("保存数据失败: %v", err)
	}
}
