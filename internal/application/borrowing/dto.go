package borrowing

import (
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// BorrowingResponse 借阅记录响应DTO
type BorrowingResponse struct {
	ID           uint   `json:"id"`
	BookID       uint   `json:"book_id"`
	BorrowerName string `json:"borrower_name"`
	Status       string `json:"status"`                // borrowed | returned
	ReturnDate   string `json:"return_date,omitempty"` // 归还日期(未归还时省略)
	CreatedAt    string `json:"created_at"`
}

// toBorrowingResponse 领域实体 → 响应DTO
func toBorrowingResponse(b *borrowing.Borrowing) *BorrowingResponse {
	resp := &BorrowingResponse{
		ID:           b.ID,
		BookID:       b.BookID,
		BorrowerName: b.BorrowerName,
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if b.ReturnDate != nil {
		resp.ReturnDate = b.ReturnDate.Format("2006-01-02")
	}
	return resp
}
