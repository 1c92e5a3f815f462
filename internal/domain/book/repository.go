package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息(包含副本数字段)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 查询图书列表(默认按书名升序)
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(用于借书/编辑/删除)
	// 使用SELECT FOR UPDATE锁定行,防止并发修改副本数
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateAvailableCopies 原子调整可借副本数
	// delta为正数表示归还/撤销(+1),负数表示借出(-1)
	// 借出以条件更新实现(available_copies + delta >= 0),
	// 不满足条件时返回ErrNoAvailableCopies,防止并发借空;
	// 归还/撤销无条件执行,可借数为负("超借")时同样+1
	UpdateAvailableCopies(ctx context.Context, id uint, delta int) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索书名、作者、分类)
}
