package borrowing

import (
	"context"
	"time"
)

// ListItem 借阅列表读模型
// 设计说明:
// 借阅列表需要展示图书的书名和作者,这两个字段在读取时
// 连表冗余得到(denormalized),不落库存储
type ListItem struct {
	ID           uint
	BookID       uint
	BookTitle    string // 冗余自books.title
	BookAuthor   string // 冗余自books.author
	BorrowerName string
	Status       Status
	ReturnDate   *time.Time
	CreatedAt    time.Time
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}

// Repository 借阅仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建借阅记录(必须在借书事务中调用)
	Create(ctx context.Context, b *Borrowing) error

	// FindByID 根据ID查找借阅记录
	FindByID(ctx context.Context, id uint) (*Borrowing, error)

	// LockByID 悲观锁查询借阅记录(用于归还/撤销)
	// 先锁行再判断状态,保证重复归还在并发下也只成功一次
	LockByID(ctx context.Context, id uint) (*Borrowing, error)

	// Update 更新借阅记录(状态流转:borrowed → returned)
	Update(ctx context.Context, b *Borrowing) error

	// Delete 删除借阅记录(撤销借阅,物理删除)
	Delete(ctx context.Context, id uint) error

	// List 查询借阅列表(连表冗余图书信息,按创建时间降序)
	List(ctx context.Context, params ListParams) ([]*ListItem, int64, error)

	// CountByBookID 统计某图书的借阅记录数(不区分状态)
	// 用于删除图书前的引用检查
	CountByBookID(ctx context.Context, bookID uint) (int64, error)
}
