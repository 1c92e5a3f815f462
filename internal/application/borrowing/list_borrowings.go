package borrowing

import (
	"context"

	"github.com/xiebiao/library/internal/domain/borrowing"
)

// ListBorrowingsUseCase 借阅列表查询用例
// 列表项冗余图书的书名/作者(读取时连表得到,不落库)
type ListBorrowingsUseCase struct {
	borrowingRepo borrowing.Repository
}

// NewListBorrowingsUseCase 创建借阅列表用例
func NewListBorrowingsUseCase(borrowingRepo borrowing.Repository) *ListBorrowingsUseCase {
	return &ListBorrowingsUseCase{borrowingRepo: borrowingRepo}
}

// ListBorrowingsRequest 列表查询请求DTO
type ListBorrowingsRequest struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}

// BorrowingListItem 借阅列表项DTO
type BorrowingListItem struct {
	ID           uint   `json:"id"`
	BookID       uint   `json:"book_id"`
	BookTitle    string `json:"book_title"`  // 冗余字段,连表得到
	BookAuthor   string `json:"book_author"` // 冗余字段,连表得到
	BorrowerName string `json:"borrower_name"`
	Status       string `json:"status"`
	ReturnDate   string `json:"return_date,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// ListBorrowingsResponse 列表查询响应DTO
type ListBorrowingsResponse struct {
	List       []BorrowingListItem `json:"list"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// Execute 执行借阅列表查询(按借出时间降序,最新的在前)
func (uc *ListBorrowingsUseCase) Execute(ctx context.Context, req ListBorrowingsRequest) (*ListBorrowingsResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	// 2. 查询
	items, total, err := uc.borrowingRepo.List(ctx, borrowing.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	// 3. 转换为DTO
	list := make([]BorrowingListItem, len(items))
	for i, item := range items {
		dto := BorrowingListItem{
			ID:           item.ID,
			BookID:       item.BookID,
			BookTitle:    item.BookTitle,
			BookAuthor:   item.BookAuthor,
			BorrowerName: item.BorrowerName,
			Status:       item.Status.String(),
			CreatedAt:    item.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if item.ReturnDate != nil {
			dto.ReturnDate = item.ReturnDate.Format("2006-01-02")
		}
		list[i] = dto
	}

	// 4. 计算总页数
	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBorrowingsResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
