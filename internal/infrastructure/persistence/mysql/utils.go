package mysql

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// wrapStorageError 将数据库错误包装为StorageError(50001)
// 设计说明:
// 1. 基础设施故障(连接断开、事务超时)对调用方是同一类错误:稍后重试
// 2. 原始错误保留在Err字段,仅进日志,不返回给客户端
func wrapStorageError(err error, message string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}
