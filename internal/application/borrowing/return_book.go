package borrowing

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// ReturnBookUseCase 还书用例
// 教学要点:幂等边界
// 同一条借阅重复归还,第二次必须失败(AlreadyReturned),
// 且可借副本数总共只能加1——所以状态检查必须在借阅行的
// 行锁保护下进行,两个并发归还请求串行化后只有一个能通过检查
type ReturnBookUseCase struct {
	bookRepo      book.Repository
	borrowingRepo borrowing.Repository
	txManager     TxManager
	cache         BookCache
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(
	bookRepo book.Repository,
	borrowingRepo borrowing.Repository,
	txManager TxManager,
	cache BookCache,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
		txManager:     txManager,
		cache:         cache,
	}
}

// Execute 执行还书用例
func (uc *ReturnBookUseCase) Execute(ctx context.Context, borrowingID uint) (*BorrowingResponse, error) {
	var returned *borrowing.Borrowing

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定借阅行(不存在时返回NotFound)
		br, err := uc.borrowingRepo.LockByID(txCtx, borrowingID)
		if err != nil {
			return err
		}

		// 2. 领域行为:状态流转borrowed → returned
		// 已归还的记录在这里失败,副本数不会被加第二次
		if err := br.Return(time.Now()); err != nil {
			return err
		}

		// 3. 持久化状态与归还日期
		if err := uc.borrowingRepo.Update(txCtx, br); err != nil {
			return err
		}

		// 4. 归还副本(+1)
		if err := uc.bookRepo.UpdateAvailableCopies(txCtx, br.BookID, 1); err != nil {
			return err
		}

		returned = br
		return nil
	})

	if err != nil {
		return nil, err
	}

	_ = uc.cache.InvalidateBookList(ctx)

	return toBorrowingResponse(returned), nil
}
