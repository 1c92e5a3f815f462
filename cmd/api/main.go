package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/library/internal/application/book"
	appborrowing "github.com/xiebiao/library/internal/application/borrowing"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// main 主程序入口
// 说明:手动依赖注入(wire.go中有对应的Wire配置,可用wire gen生成)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 依赖注入（手动组装）
	// 依赖链: Repository ← Service/TxManager ← UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	borrowingRepo := mysql.NewBorrowingRepository(db)
	txManager := mysql.NewTxManager(db)
	cacheStore := redis.NewCacheStore(redisClient, cfg.Cache.BookListTTL)
	m := metrics.New("library", prometheus.DefaultRegisterer)

	// 领域层
	bookService := book.NewService(bookRepo)

	// 应用层
	createBookUseCase := appbook.NewCreateBookUseCase(bookService, cacheStore)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService, cacheStore)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookRepo, txManager, cacheStore)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookRepo, borrowingRepo, txManager, cacheStore)

	borrowBookUseCase := appborrowing.NewBorrowBookUseCase(bookRepo, borrowingRepo, txManager, cacheStore)
	returnBookUseCase := appborrowing.NewReturnBookUseCase(bookRepo, borrowingRepo, txManager, cacheStore)
	cancelBorrowingUC := appborrowing.NewCancelBorrowingUseCase(bookRepo, borrowingRepo, txManager, cacheStore)
	listBorrowingsUseCase := appborrowing.NewListBorrowingsUseCase(borrowingRepo)

	// 接口层
	bookHandler := handler.NewBookHandler(
		createBookUseCase, listBooksUseCase, getBookUseCase, updateBookUseCase, deleteBookUseCase)
	borrowingHandler := handler.NewBorrowingHandler(
		borrowBookUseCase, returnBookUseCase, cancelBorrowingUC, listBorrowingsUseCase, m)

	// 5. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORS))

	// 6. 注册路由
	registerRoutes(r, bookHandler, borrowingHandler)

	// 7. 启动服务（带优雅停机）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 等待停止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// 优雅停机:停止接收新请求,等待正在处理的请求完成(最多10秒)
	log.Println("正在停止服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("停止服务失败: %v", err)
	}

	// 释放连接资源
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = redisClient.Close()
	log.Println("服务已停止")
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, bookHandler *handler.BookHandler, borrowingHandler *handler.BorrowingHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档路由
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.POST("", bookHandler.CreateBook)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}

		// 借阅模块
		borrowings := v1.Group("/borrowings")
		{
			borrowings.GET("", borrowingHandler.ListBorrowings)
			borrowings.POST("", borrowingHandler.BorrowBook)
			borrowings.PUT("/:id/return", borrowingHandler.ReturnBook)
			borrowings.DELETE("/:id", borrowingHandler.CancelBorrowing)
		}
	}
}
