// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"athlete-care-go/internal/config"
	"athlete-care-go/internal/handler"
	"athlete-care-go/internal/middleware"
	"athlete-care-go/internal/model"
	"athlete-care-go/internal/repository"
	"athlete-care-go/internal/service"
	"athlete-care-go/pkg/database"
	"athlete-care-go/pkg/es"
	"athlete-care-go/pkg/inference"
	"athlete-care-go/pkg/kafka"
	"athlete-care-go/pkg/log"
	"athlete-care-go/pkg/storage"
	"athlete-care-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis、对象存储、搜索与消息队列
	database.InitMySQL(cfg.Database.MySQL.DSN)
	if err := database.DB.AutoMigrate(
		&model.User{},
		&model.QueryRecord{},
		&model.Athlete{},
		&model.Appointment{},
		&model.TreatmentPlan{},
		&model.Report{},
	); err != nil {
		log.Fatal("数据库迁移失败", err)
	}
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)
	defer kafka.Close()

	// 4. 初始化 Repository
	userRepository := repository.NewUserRepository(database.DB)
	queryRecordRepo := repository.NewQueryRecordRepository(database.DB)
	athleteRepo := repository.NewAthleteRepository(database.DB)
	appointmentRepo := repository.NewAppointmentRepository(database.DB)
	treatmentPlanRepo := repository.NewTreatmentPlanRepository(database.DB)
	reportRepo := repository.NewReportRepository(database.DB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	inferenceClient := inference.NewClient(cfg.Inference)
	userService := service.NewUserService(userRepository, jwtManager, database.RDB)
	searchService := service.NewSearchService(es.ESClient, cfg.Elasticsearch.IndexName)
	queryService := service.NewQueryService(queryRecordRepo, inferenceClient, searchService)
	conversationService := service.NewConversationService(queryRecordRepo)
	athleteService := service.NewAthleteService(athleteRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, athleteRepo)
	treatmentPlanService := service.NewTreatmentPlanService(treatmentPlanRepo, athleteRepo)
	reportService := service.NewReportService(reportRepo, athleteRepo, cfg.MinIO)

	// 6. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 7. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", handler.NewUserHandler(userService).Register)
			users.POST("/login", handler.NewUserHandler(userService).Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/me", handler.NewUserHandler(userService).GetProfile)
				authed.POST("/logout", handler.NewUserHandler(userService).Logout)
			}
		}

		// Query 路由组：问答提交与对话历史
		queries := apiV1.Group("/queries")
		queries.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			queryHandler := handler.NewQueryHandler(queryService, conversationService)
			queries.POST("", queryHandler.Submit)
			queries.GET("/history", queryHandler.History)
			queries.GET("/conversations", queryHandler.ListConversations)
		}

		// Search 路由组：问答历史全文检索
		search := apiV1.Group("/search")
		search.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			search.GET("/history", handler.NewSearchHandler(searchService).SearchHistory)
		}

		// Athlete 路由组
		athletes := apiV1.Group("/athletes")
		athletes.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			athleteHandler := handler.NewAthleteHandler(athleteService)
			athletes.POST("", athleteHandler.Create)
			athletes.GET("", athleteHandler.List)
			athletes.GET("/:id", athleteHandler.Get)
			athletes.PUT("/:id", athleteHandler.Update)
			athletes.DELETE("/:id", athleteHandler.Delete)
		}

		// Appointment 路由组
		appointments := apiV1.Group("/appointments")
		appointments.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			appointmentHandler := handler.NewAppointmentHandler(appointmentService)
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("", appointmentHandler.ListByRange)
			appointments.GET("/athlete/:athleteId", appointmentHandler.ListByAthlete)
			appointments.PUT("/:id/status", appointmentHandler.UpdateStatus)
		}

		// TreatmentPlan 路由组
		plans := apiV1.Group("/treatment-plans")
		plans.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			planHandler := handler.NewTreatmentPlanHandler(treatmentPlanService)
			plans.POST("", planHandler.Create)
			plans.GET("/:id", planHandler.Get)
			plans.GET("/athlete/:athleteId", planHandler.ListByAthlete)
			plans.PUT("/:id", planHandler.Update)
		}

		// Report 路由组
		reports := apiV1.Group("/reports")
		reports.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			reportHandler := handler.NewReportHandler(reportService)
			reports.POST("/athlete/:athleteId", reportHandler.Upload)
			reports.GET("/athlete/:athleteId", reportHandler.ListByAthlete)
			reports.GET("/:id/download-url", reportHandler.DownloadURL)
		}
	}

	// 8. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
