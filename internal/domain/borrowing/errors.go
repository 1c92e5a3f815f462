package borrowing

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrBorrowingNotFound 借阅记录不存在
	ErrBorrowingNotFound = apperrors.New(apperrors.ErrCodeBorrowingNotFound, "借阅记录不存在")

	// ErrAlreadyReturned 重复归还
	ErrAlreadyReturned = apperrors.New(apperrors.ErrCodeAlreadyReturned, "该借阅已归还,不能重复归还")

	// ErrBorrowingCompleted 已归还的借阅不允许撤销
	ErrBorrowingCompleted = apperrors.New(apperrors.ErrCodeBorrowingCompleted, "已归还的借阅不允许撤销")

	// ErrInvalidBookID 图书ID缺失
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID不能为空")

	// ErrEmptyBorrowerName 借阅人姓名为空
	ErrEmptyBorrowerName = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅人姓名不能为空")
)
