package dto

// CreateBookRequest HTTP图书录入请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值或长度范围校验
// 注意:TotalCopies使用指针类型,区分"未传"与"传了0"
// (int的0是零值,binding:required会把0当作缺失)
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Dune"`
	Author      string `json:"author" binding:"required,max=100" example:"Frank Herbert"`
	ISBN        string `json:"isbn" binding:"omitempty,max=20" example:"9780441172719"`
	Category    string `json:"category" binding:"required,max=50" example:"SciFi"`
	TotalCopies *int   `json:"total_copies" binding:"required,min=0" example:"2"`
}

// UpdateBookRequest HTTP图书编辑请求
// 字段要求与录入一致;ID从URL路径取
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Dune"`
	Author      string `json:"author" binding:"required,max=100" example:"Frank Herbert"`
	ISBN        string `json:"isbn" binding:"omitempty,max=20" example:"9780441172719"`
	Category    string `json:"category" binding:"required,max=50" example:"SciFi"`
	TotalCopies *int   `json:"total_copies" binding:"required,min=0" example:"8"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Dune"`
}
