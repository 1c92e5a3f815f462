package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrNoAvailableCopies 无可借副本
	ErrNoAvailableCopies = apperrors.New(apperrors.ErrCodeNoAvailableCopies, "该图书暂无可借副本")

	// ErrBookReferenced 图书仍被借阅记录引用,不允许删除
	ErrBookReferenced = apperrors.New(apperrors.ErrCodeBookReferenced, "该图书存在借阅记录,不允许删除")

	// ErrEmptyTitle 书名为空
	ErrEmptyTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrEmptyAuthor 作者为空
	ErrEmptyAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")

	// ErrEmptyCategory 分类为空
	ErrEmptyCategory = apperrors.New(apperrors.ErrCodeInvalidParams, "图书分类不能为空")

	// ErrNegativeTotalCopies 总副本数为负数
	ErrNegativeTotalCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "总副本数不能为负数")
)
