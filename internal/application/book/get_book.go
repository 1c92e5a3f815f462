package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}
