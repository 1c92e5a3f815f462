package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookUseCase 图书录入用例
// 设计说明:
// 1. 应用层负责用例编排,字段校验由领域服务(工厂方法)负责
// 2. 录入成功后删除列表缓存,保证下次列表查询能看到新书
type CreateBookUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewCreateBookUseCase 创建录入用例
func NewCreateBookUseCase(bookService book.Service, cache Cache) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// CreateBookRequest 录入请求DTO
type CreateBookRequest struct {
	Title       string // 书名(必填)
	Author      string // 作者(必填)
	ISBN        string // ISBN号(可选)
	Category    string // 分类(必填)
	TotalCopies int    // 馆藏总副本数(>=0)
}

// Execute 执行录入用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, req.Title, req.Author, req.ISBN, req.Category, req.TotalCopies)
	if err != nil {
		return nil, err
	}

	// 缓存失效采用尽力而为:缓存故障不影响写入结果,
	// 过期的列表缓存最多存活一个TTL周期
	_ = uc.cache.InvalidateBookList(ctx)

	return toBookResponse(b), nil
}
