package borrowing

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// CancelBorrowingUseCase 撤销借阅用例
// 设计说明:
// 1. 撤销用于误操作场景:删除借阅记录本身,而不是走归还流程
// 2. 只有借出中的记录可以撤销;已归还的是历史事实,不允许撤销
// 3. 与还书相同,副本数+1与记录删除必须原子提交
type CancelBorrowingUseCase struct {
	bookRepo      book.Repository
	borrowingRepo borrowing.Repository
	txManager     TxManager
	cache         BookCache
}

// NewCancelBorrowingUseCase 创建撤销用例
func NewCancelBorrowingUseCase(
	bookRepo book.Repository,
	borrowingRepo borrowing.Repository,
	txManager TxManager,
	cache BookCache,
) *CancelBorrowingUseCase {
	return &CancelBorrowingUseCase{
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
		txManager:     txManager,
		cache:         cache,
	}
}

// Execute 执行撤销用例
func (uc *CancelBorrowingUseCase) Execute(ctx context.Context, borrowingID uint) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定借阅行
		br, err := uc.borrowingRepo.LockByID(txCtx, borrowingID)
		if err != nil {
			return err
		}

		// 2. 状态检查:已归还的不允许撤销
		if err := br.EnsureCancelable(); err != nil {
			return err
		}

		// 3. 物理删除借阅记录
		if err := uc.borrowingRepo.Delete(txCtx, br.ID); err != nil {
			return err
		}

		// 4. 归还副本(+1)
		return uc.bookRepo.UpdateAvailableCopies(txCtx, br.BookID, 1)
	})

	if err != nil {
		return err
	}

	_ = uc.cache.InvalidateBookList(ctx)
	return nil
}
