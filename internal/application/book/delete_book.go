package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// DeleteBookUseCase 图书删除用例
// 教学要点:
// 1. 引用保护:只要存在任何借阅记录(无论借出中还是已归还),
//    图书都不允许删除——历史账本必须能连到图书
// 2. 引用检查与删除必须在同一事务中并锁定图书行,
//    防止检查通过后、删除提交前有人并发借书
type DeleteBookUseCase struct {
	bookRepo      book.Repository
	borrowingRepo borrowing.Repository
	txManager     TxManager
	cache         Cache
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	borrowingRepo borrowing.Repository,
	txManager TxManager,
	cache Cache,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
		txManager:     txManager,
		cache:         cache,
	}
}

// Execute 执行删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定图书行(不存在时返回NotFound)
		if _, err := uc.bookRepo.LockByID(txCtx, id); err != nil {
			return err
		}

		// 2. 引用检查:任何状态的借阅记录都阻止删除
		count, err := uc.borrowingRepo.CountByBookID(txCtx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return book.ErrBookReferenced
		}

		// 3. 删除(软删除)
		return uc.bookRepo.Delete(txCtx, id)
	})

	if err != nil {
		return err
	}

	_ = uc.cache.InvalidateBookList(ctx)
	return nil
}
