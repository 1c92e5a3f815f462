//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/library/internal/application/book"
	appborrowing "github.com/xiebiao/library/internal/application/borrowing"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/metrics"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,       // 加载配置文件
	mysql.NewDB,       // 创建MySQL连接
	redis.NewClient,   // 创建Redis连接
	provideCacheStore, // 创建缓存存储（需要从config提取TTL）
	provideMetrics,    // 创建指标集合
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,      // 图书仓储
	mysql.NewBorrowingRepository, // 借阅仓储
	mysql.NewTxManager,           // 事务管理器
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService, // 图书领域服务
)

// applicationSet 应用层依赖
// 教学要点：应用层依赖的是接口（TxManager/Cache），
// wire.Bind告诉Wire用哪个具体实现满足接口
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appborrowing.NewBorrowBookUseCase,
	appborrowing.NewReturnBookUseCase,
	appborrowing.NewCancelBorrowingUseCase,
	appborrowing.NewListBorrowingsUseCase,
	wire.Bind(new(appbook.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appbook.Cache), new(*redis.CacheStore)),
	wire.Bind(new(appborrowing.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appborrowing.BookCache), new(*redis.CacheStore)),
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewBorrowingHandler,
)

// provideCacheStore 从配置创建缓存存储
func provideCacheStore(client *goredis.Client, cfg *config.Config) *redis.CacheStore {
	return redis.NewCacheStore(client, cfg.Cache.BookListTTL)
}

// provideMetrics 创建并注册指标
func provideMetrics() *metrics.Metrics {
	return metrics.New("library", prometheus.DefaultRegisterer)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	m *metrics.Metrics,
	bookHandler *handler.BookHandler,
	borrowingHandler *handler.BorrowingHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORS))

	registerRoutes(r, bookHandler, borrowingHandler)
	return r
}

// InitializeApp 初始化整个应用（Wire Injector）
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
