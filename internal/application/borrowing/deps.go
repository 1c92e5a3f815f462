package borrowing

import (
	"context"
)

// TxManager 事务边界抽象(由infrastructure层的mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookCache 图书列表缓存失效接口
// 借书/还书/撤销会改变available_copies,列表缓存必须失效
// (只需要失效能力,不需要完整的Cache接口)
type BookCache interface {
	InvalidateBookList(ctx context.Context) error
}
