package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误统一包装为StorageError(50001),不向上层泄露驱动细节
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := &BookModel{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Category:        b.Category,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}

	// 2. 插入数据库
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return wrapStorageError(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, wrapStorageError(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息
// 使用显式字段Map更新,保证AvailableCopies为0或负数时也能写入
// (GORM的Updates对结构体会跳过零值字段)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := r.getDB(ctx).Model(&BookModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"title":            b.Title,
		"author":           b.Author,
		"isbn":             b.ISBN,
		"category":         b.Category,
		"total_copies":     b.TotalCopies,
		"available_copies": b.AvailableCopies,
		"updated_at":       b.UpdatedAt,
	})

	if result.Error != nil {
		return wrapStorageError(result.Error, "更新图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// Delete 删除图书(软删除)
// 引用检查由应用层的删除用例在同一事务中完成
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return wrapStorageError(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 查询图书列表
// 默认按书名升序;支持分页与关键词搜索(书名/作者/分类)
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.getDB(ctx).Model(&BookModel{})

	// 关键词搜索
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ? OR category LIKE ?", keyword, keyword, keyword)
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapStorageError(err, "查询图书总数失败")
	}

	// 排序与分页
	query = query.Order("title ASC")
	offset := (params.Page - 1) * params.PageSize
	query = query.Limit(params.PageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, wrapStorageError(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i, model := range models {
		books[i] = toBookEntity(&model)
	}

	return books, total, nil
}

// LockByID 悲观锁查询图书
// SELECT * FROM books WHERE id = ? FOR UPDATE
// 必须在TxManager.Transaction内调用,锁在事务提交/回滚时释放
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, wrapStorageError(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// UpdateAvailableCopies 原子调整可借副本数
// 借出(delta<0)时条件更新:
// UPDATE books SET available_copies = available_copies + delta
//   WHERE id = ? AND available_copies + delta >= 0
// 条件更新保证即使没有行锁保护,也不会把可借数借成负数。
// 归还/撤销(delta>0)是无条件的:馆藏缩减可能让可借数已经为负("超借"),
// 此时归还必须照常+1,否则副本永远还不回来
func (r *bookRepository) UpdateAvailableCopies(ctx context.Context, id uint, delta int) error {
	db := r.getDB(ctx)

	query := db.Model(&BookModel{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("available_copies + ? >= 0", delta)
	}
	result := query.Update("available_copies", gorm.Expr("available_copies + ?", delta))

	if result.Error != nil {
		return wrapStorageError(result.Error, "更新可借副本数失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者可借副本不足,再查一次确定原因
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return wrapStorageError(err, "查询图书失败")
		}
		// 图书存在,说明是可借副本不足
		return book.ErrNoAvailableCopies
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		Author:          model.Author,
		ISBN:            model.ISBN,
		Category:        model.Category,
		TotalCopies:     model.TotalCopies,
		AvailableCopies: model.AvailableCopies,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
