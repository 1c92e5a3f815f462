package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意:AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&BorrowingModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/book/entity.go是领域实体,不依赖GORM
// 3. Repository负责两者之间的转换
// 4. AvailableCopies允许为负(馆藏缩减到少于借出数时),列类型不能是无符号
type BookModel struct {
	ID              uint           `gorm:"primaryKey"`
	Title           string         `gorm:"index;size:200;not null;comment:书名"` // 列表按书名排序
	Author          string         `gorm:"size:100;not null;comment:作者"`
	ISBN            string         `gorm:"size:20;comment:ISBN号(可选,不强制唯一)"`
	Category        string         `gorm:"index;size:50;not null;comment:分类"`
	TotalCopies     int            `gorm:"not null;comment:馆藏总副本数"`
	AvailableCopies int            `gorm:"not null;comment:当前可借副本数"`
	CreatedAt       time.Time      `gorm:"comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BorrowingModel GORM借阅模型
// 设计说明:
// 1. BookID外键关联books表,删除图书前由应用层做引用检查
// 2. Status使用tinyint存储(1=borrowed 2=returned)
// 3. ReturnDate可空,未归还时为NULL
// 4. 无DeletedAt字段:撤销借阅是物理删除,账本上不保留痕迹
type BorrowingModel struct {
	ID           uint       `gorm:"primaryKey"`
	BookID       uint       `gorm:"index;not null;comment:图书ID"`
	BorrowerName string     `gorm:"size:100;not null;comment:借阅人姓名"`
	Status       int        `gorm:"index;type:tinyint;default:1;comment:借阅状态(1借出中2已归还)"`
	ReturnDate   *time.Time `gorm:"comment:归还日期"`
	CreatedAt    time.Time  `gorm:"index;comment:借出时间"` // 列表按借出时间降序
	UpdatedAt    time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BorrowingModel) TableName() string {
	return "borrowings"
}
