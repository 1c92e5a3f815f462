package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装不涉及借阅账本的单聚合操作(创建/查询/列表)
// 2. 涉及副本数与借阅记录联动的操作(编辑/删除/借还)
//    属于跨聚合事务,由应用层用例配合TxManager完成
type Service interface {
	// CreateBook 录入图书
	// 业务规则:
	// - 书名/作者/分类必填
	// - 总副本数>=0
	// - 新建图书available_copies = total_copies
	CreateBook(ctx context.Context, title, author, isbn, category string, totalCopies int) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// ListBooks 查询图书列表(按书名升序)
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 录入图书
func (s *service) CreateBook(ctx context.Context, title, author, isbn, category string, totalCopies int) (*Book, error) {
	// 1. 工厂方法负责字段校验
	b, err := NewBook(title, author, isbn, category, totalCopies)
	if err != nil {
		return nil, err
	}

	// 2. 持久化
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}
