package borrowing

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// BorrowBookUseCase 借书用例
// 教学要点:这是整个系统最核心的用例,涉及事务处理与并发控制
//
// 核心问题:最后一本被并发借走
// 场景:某书available_copies=1,两个请求同时借
// 错误实现:
//  1. 查询可借数 → 1
//  2. 判断够不够 → 够
//  3. 扣减可借数 → available = available - 1
//     结果:两个请求都通过了步骤2,最后借出2本(账实不符!)
//
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE 锁定图书行
//  2. 判断可借数是否>0
//  3. 创建借阅记录
//  4. 条件更新扣减可借数
//  5. COMMIT释放锁
//     第二个请求在步骤1阻塞,拿到锁后看到available=0,失败返回
type BorrowBookUseCase struct {
	bookRepo      book.Repository
	borrowingRepo borrowing.Repository
	txManager     TxManager
	cache         BookCache
}

// NewBorrowBookUseCase 创建借书用例
func NewBorrowBookUseCase(
	bookRepo book.Repository,
	borrowingRepo borrowing.Repository,
	txManager TxManager,
	cache BookCache,
) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
		txManager:     txManager,
		cache:         cache,
	}
}

// BorrowBookRequest 借书请求DTO
type BorrowBookRequest struct {
	BookID       uint   // 图书ID(必填)
	BorrowerName string // 借阅人姓名(必填)
}

// Execute 执行借书用例
// 失败语义:任何一步失败整个事务回滚,借阅记录与副本数要么都变,要么都不变
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (*BorrowingResponse, error) {
	// 1. 参数校验(工厂方法负责),不合法的请求不开启事务
	br, err := borrowing.NewBorrowing(req.BookID, req.BorrowerName)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 2. 锁定图书行(图书不存在时返回NotFound)
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		// 3. 可借数检查
		// 必须在锁定后检查,否则可能并发扣减导致借空
		if !b.HasAvailableCopy() {
			return book.ErrNoAvailableCopies
		}

		// 4. 创建借阅记录
		if err := uc.borrowingRepo.Create(txCtx, br); err != nil {
			return err
		}

		// 5. 扣减可借副本数(条件更新,双重保险)
		return uc.bookRepo.UpdateAvailableCopies(txCtx, req.BookID, -1)
	})

	if err != nil {
		return nil, err
	}

	// 副本数变了,图书列表缓存失效(尽力而为)
	_ = uc.cache.InvalidateBookList(ctx)

	return toBorrowingResponse(br), nil
}
