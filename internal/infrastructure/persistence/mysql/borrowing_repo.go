package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/borrowing"
)

// borrowingRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/borrowing/repository.go定义的接口
// 2. 列表查询连表冗余图书的书名/作者(读时denormalize,不落库)
// 3. 事务通过context传递
type borrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository 创建借阅仓储
func NewBorrowingRepository(db *gorm.DB) borrowing.Repository {
	return &borrowingRepository{db: db}
}

// Create 创建借阅记录
// 必须在借书事务中调用(与图书副本数扣减原子提交)
func (r *borrowingRepository) Create(ctx context.Context, b *borrowing.Borrowing) error {
	model := &BorrowingModel{
		BookID:       b.BookID,
		BorrowerName: b.BorrowerName,
		Status:       int(b.Status),
		ReturnDate:   b.ReturnDate,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return wrapStorageError(err, "创建借阅记录失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *borrowingRepository) FindByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	var model BorrowingModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrowing.ErrBorrowingNotFound
		}
		return nil, wrapStorageError(err, "查询借阅记录失败")
	}

	return toBorrowingEntity(&model), nil
}

// LockByID 悲观锁查询借阅记录
// SELECT * FROM borrowings WHERE id = ? FOR UPDATE
// 归还/撤销前先锁行再判断状态,并发下重复归还只会成功一次
func (r *borrowingRepository) LockByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	var model BorrowingModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrowing.ErrBorrowingNotFound
		}
		return nil, wrapStorageError(err, "锁定借阅记录失败")
	}

	return toBorrowingEntity(&model), nil
}

// Update 更新借阅记录
// 只更新状态流转涉及的字段(status、return_date、updated_at)
func (r *borrowingRepository) Update(ctx context.Context, b *borrowing.Borrowing) error {
	result := r.getDB(ctx).Model(&BorrowingModel{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"status":      int(b.Status),
		"return_date": b.ReturnDate,
		"updated_at":  b.UpdatedAt,
	})

	if result.Error != nil {
		return wrapStorageError(result.Error, "更新借阅记录失败")
	}

	if result.RowsAffected == 0 {
		return borrowing.ErrBorrowingNotFound
	}

	return nil
}

// Delete 删除借阅记录(物理删除)
func (r *borrowingRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&BorrowingModel{}, id)

	if result.Error != nil {
		return wrapStorageError(result.Error, "删除借阅记录失败")
	}

	if result.RowsAffected == 0 {
		return borrowing.ErrBorrowingNotFound
	}

	return nil
}

// borrowingListRow 连表查询的扫描结构
type borrowingListRow struct {
	BorrowingModel
	BookTitle  string
	BookAuthor string
}

// List 查询借阅列表(按借出时间降序)
// 连表冗余图书信息:
// SELECT borrowings.*, books.title AS book_title, books.author AS book_author
//   FROM borrowings JOIN books ON books.id = borrowings.book_id
// 图书存在借阅记录时不允许被删除,因此JOIN不会丢行
func (r *borrowingRepository) List(ctx context.Context, params borrowing.ListParams) ([]*borrowing.ListItem, int64, error) {
	var rows []borrowingListRow
	var total int64

	db := r.getDB(ctx)

	// 查询总数
	if err := db.Model(&BorrowingModel{}).Count(&total).Error; err != nil {
		return nil, 0, wrapStorageError(err, "查询借阅总数失败")
	}

	// 分页连表查询
	offset := (params.Page - 1) * params.PageSize
	err := db.Table("borrowings").
		Select("borrowings.*, books.title AS book_title, books.author AS book_author").
		Joins("JOIN books ON books.id = borrowings.book_id").
		Order("borrowings.created_at DESC").
		Limit(params.PageSize).
		Offset(offset).
		Scan(&rows).Error

	if err != nil {
		return nil, 0, wrapStorageError(err, "查询借阅列表失败")
	}

	items := make([]*borrowing.ListItem, len(rows))
	for i, row := range rows {
		items[i] = &borrowing.ListItem{
			ID:           row.ID,
			BookID:       row.BookID,
			BookTitle:    row.BookTitle,
			BookAuthor:   row.BookAuthor,
			BorrowerName: row.BorrowerName,
			Status:       borrowing.Status(row.Status),
			ReturnDate:   row.ReturnDate,
			CreatedAt:    row.CreatedAt,
		}
	}

	return items, total, nil
}

// CountByBookID 统计某图书的借阅记录数(不区分状态)
func (r *borrowingRepository) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&BorrowingModel{}).Where("book_id = ?", bookID).Count(&count).Error
	if err != nil {
		return 0, wrapStorageError(err, "统计借阅记录失败")
	}
	return count, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBorrowingEntity GORM模型 → 领域实体
func toBorrowingEntity(model *BorrowingModel) *borrowing.Borrowing {
	return &borrowing.Borrowing{
		ID:           model.ID,
		BookID:       model.BookID,
		BorrowerName: model.BorrowerName,
		Status:       borrowing.Status(model.Status),
		ReturnDate:   model.ReturnDate,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *borrowingRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
