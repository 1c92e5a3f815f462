package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// UpdateBookUseCase 图书编辑用例
// 教学要点:
// 1. 编辑总副本数时必须保持"借出中数量"不变:
//    new_available = new_total - on_loan
// 2. on_loan的读取与新副本数的写入必须在同一事务中,
//    并对图书行加锁——否则与并发借书/还书交错会算错on_loan
type UpdateBookUseCase struct {
	bookRepo  book.Repository
	txManager TxManager
	cache     Cache
}

// NewUpdateBookUseCase 创建编辑用例
func NewUpdateBookUseCase(bookRepo book.Repository, txManager TxManager, cache Cache) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookRepo:  bookRepo,
		txManager: txManager,
		cache:     cache,
	}
}

// UpdateBookRequest 编辑请求DTO
type UpdateBookRequest struct {
	ID          uint
	Title       string // 书名(必填)
	Author      string // 作者(必填)
	ISBN        string // ISBN号(可选)
	Category    string // 分类(必填)
	TotalCopies int    // 新的馆藏总副本数(>=0)
}

// Execute 执行编辑用例
// 注意:当新的总副本数小于当前借出数时,available_copies会变为负数。
// 这是被接受的行为(见Book.ApplyEdit),调用方需知晓负数含义为"超借"。
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	var updated *book.Book

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定图书行(FOR UPDATE),冻结on_loan
		b, err := uc.bookRepo.LockByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		// 2. 领域行为:校验字段并按on_loan重算可借数
		if err := b.ApplyEdit(req.Title, req.Author, req.ISBN, req.Category, req.TotalCopies); err != nil {
			return err
		}

		// 3. 持久化全部字段
		if err := uc.bookRepo.Update(txCtx, b); err != nil {
			return err
		}

		updated = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	_ = uc.cache.InvalidateBookList(ctx)

	return toBookResponse(updated), nil
}
