package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// TxManager 事务边界抽象
// 设计说明:
// 1. 由infrastructure层的mysql.TxManager实现
// 2. 应用层只依赖接口,单元测试可以用内存实现替换
// 3. fn内的所有Repository操作在同一事务中执行,fn返回error时回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache 图书列表缓存抽象(Cache-Aside)
// 由infrastructure层的redis.CacheStore实现;未命中时hit=false,不是错误
type Cache interface {
	GetBookList(ctx context.Context, params book.ListParams) ([]*book.Book, int64, bool, error)
	SetBookList(ctx context.Context, params book.ListParams, books []*book.Book, total int64) error
	InvalidateBookList(ctx context.Context) error
}
