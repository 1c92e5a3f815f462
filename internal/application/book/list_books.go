package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 默认按书名升序;支持分页与关键词搜索
// 2. Cache-Aside:先查Redis,未命中回源数据库并写回缓存
// 3. 缓存任何故障都降级为直接查库,不影响请求成功
type ListBooksUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service, cache Cache) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(书名/作者/分类)
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []*BookResponse `json:"list"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20 // 默认每页20条
	}
	if req.PageSize > 100 {
		req.PageSize = 100 // 最大每页100条
	}

	params := book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
	}

	// 2. 查缓存(故障时hit=false,降级查库)
	books, total, hit, err := uc.cache.GetBookList(ctx, params)
	if err != nil || !hit {
		// 3. 回源数据库
		books, total, err = uc.bookService.ListBooks(ctx, params)
		if err != nil {
			return nil, err
		}

		// 4. 写回缓存(尽力而为)
		_ = uc.cache.SetBookList(ctx, params, books, total)
	}

	// 5. 转换为DTO
	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}

	// 6. 计算总页数
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
