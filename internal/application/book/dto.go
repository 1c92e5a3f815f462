package book

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// BookResponse 图书响应DTO
// 应用层输出使用DTO,与HTTP层和领域实体解耦
type BookResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn,omitempty"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Category:        b.Category,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
