package dto

// BorrowBookRequest HTTP借书请求
type BorrowBookRequest struct {
	BookID       uint   `json:"book_id" binding:"required" example:"1"`
	BorrowerName string `json:"borrower_name" binding:"required,max=100" example:"Alice"`
}

// ListBorrowingsRequest HTTP借阅列表请求
type ListBorrowingsRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
