package handler

import (
	"github.com/gin-gonic/gin"

	appborrowing "github.com/xiebiao/library/internal/application/borrowing"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// BorrowingHandler 借阅HTTP处理器
type BorrowingHandler struct {
	borrowBookUseCase     *appborrowing.BorrowBookUseCase
	returnBookUseCase     *appborrowing.ReturnBookUseCase
	cancelBorrowingUC     *appborrowing.CancelBorrowingUseCase
	listBorrowingsUseCase *appborrowing.ListBorrowingsUseCase
	metrics               *metrics.Metrics
}

// NewBorrowingHandler 创建借阅处理器
func NewBorrowingHandler(
	borrowBookUseCase *appborrowing.BorrowBookUseCase,
	returnBookUseCase *appborrowing.ReturnBookUseCase,
	cancelBorrowingUC *appborrowing.CancelBorrowingUseCase,
	listBorrowingsUseCase *appborrowing.ListBorrowingsUseCase,
	m *metrics.Metrics,
) *BorrowingHandler {
	return &BorrowingHandler{
		borrowBookUseCase:     borrowBookUseCase,
		returnBookUseCase:     returnBookUseCase,
		cancelBorrowingUC:     cancelBorrowingUC,
		listBorrowingsUseCase: listBorrowingsUseCase,
		metrics:               m,
	}
}

// ListBorrowings 借阅列表
// @Summary      借阅列表
// @Description  按借出时间降序返回借阅记录,冗余图书的书名/作者
// @Tags         借阅
// @Produce      json
// @Param        page query int false "页码(默认1)"
// @Param        page_size query int false "每页数量(默认20,最大100)"
// @Success      200 {object} response.Response{data=appborrowing.ListBorrowingsResponse}
// @Router       /api/v1/borrowings [get]
func (h *BorrowingHandler) ListBorrowings(c *gin.Context) {
	var req dto.ListBorrowingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBorrowingsUseCase.Execute(c.Request.Context(), appborrowing.ListBorrowingsRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// BorrowBook 借书
// @Summary      借书
// @Description  借出一本图书:扣减可借副本数并创建借阅记录(原子操作)
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.BorrowBookRequest true "借书信息"
// @Success      200 {object} response.Response{data=appborrowing.BorrowingResponse}
// @Router       /api/v1/borrowings [post]
func (h *BorrowingHandler) BorrowBook(c *gin.Context) {
	var req dto.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.borrowBookUseCase.Execute(c.Request.Context(), appborrowing.BorrowBookRequest{
		BookID:       req.BookID,
		BorrowerName: req.BorrowerName,
	})
	h.metrics.ObserveStockOp("borrow", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ReturnBook 还书
// @Summary      还书
// @Description  归还一本图书:恢复可借副本数并标记借阅为已归还(原子操作,重复归还失败)
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=appborrowing.BorrowingResponse}
// @Router       /api/v1/borrowings/{id}/return [put]
func (h *BorrowingHandler) ReturnBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.returnBookUseCase.Execute(c.Request.Context(), id)
	h.metrics.ObserveStockOp("return", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBorrowing 撤销借阅
// @Summary      撤销借阅
// @Description  撤销一条借出中的借阅:恢复可借副本数并删除该记录(已归还的不允许撤销)
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/borrowings/{id} [delete]
func (h *BorrowingHandler) CancelBorrowing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.cancelBorrowingUC.Execute(c.Request.Context(), id)
	h.metrics.ObserveStockOp("cancel", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"canceled": true})
}
