package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/book"
)

// CacheStore 图书查询缓存(Redis)
//
// 教学要点：
// 1. 采用Cache-Aside（旁路缓存）策略：先查缓存，未命中再查数据库
// 2. 缓存一致性：任何图书写操作（创建/编辑/删除/借还）后删除列表缓存，
//    而不是更新缓存（更新缓存在并发下可能写入旧值）
// 3. 缓存故障必须降级：Redis不可用时直接回源数据库，绝不让读请求失败
type CacheStore struct {
	client  *redis.Client
	listTTL time.Duration
}

// NewCacheStore 创建缓存存储实例
func NewCacheStore(client *redis.Client, listTTL time.Duration) *CacheStore {
	return &CacheStore{
		client:  client,
		listTTL: listTTL,
	}
}

// bookListPayload 列表缓存的序列化结构(连同总数一起缓存,保证分页信息一致)
type bookListPayload struct {
	Books []*book.Book `json:"books"`
	Total int64        `json:"total"`
}

// GetBookList 获取图书列表缓存
// 返回值:(列表, 总数, 是否命中, 错误)
// 缓存未命中不是错误,返回hit=false由调用方回源数据库
func (c *CacheStore) GetBookList(ctx context.Context, params book.ListParams) ([]*book.Book, int64, bool, error) {
	key := c.bookListKey(params)

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, 0, false, nil
		}
		return nil, 0, false, fmt.Errorf("获取列表缓存失败: %w", err)
	}

	var payload bookListPayload
	if err := json.Unmarshal([]byte(val), &payload); err != nil {
		// 缓存内容损坏,当作未命中处理(回源后会覆盖)
		return nil, 0, false, nil
	}

	return payload.Books, payload.Total, true, nil
}

// SetBookList 写入图书列表缓存
func (c *CacheStore) SetBookList(ctx context.Context, params book.ListParams, books []*book.Book, total int64) error {
	data, err := json.Marshal(bookListPayload{Books: books, Total: total})
	if err != nil {
		return fmt.Errorf("序列化列表缓存失败: %w", err)
	}

	key := c.bookListKey(params)
	if err := c.client.Set(ctx, key, data, c.listTTL).Err(); err != nil {
		return fmt.Errorf("写入列表缓存失败: %w", err)
	}
	return nil
}

// InvalidateBookList 删除所有图书列表缓存
// 使用SCAN而非KEYS:KEYS会阻塞Redis,生产环境禁用
func (c *CacheStore) InvalidateBookList(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "books:list:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("删除列表缓存失败: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描列表缓存失败: %w", err)
	}
	return nil
}

// bookListKey 列表缓存Key
// Key按查询参数区分:books:list:{page}:{page_size}:{keyword}
func (c *CacheStore) bookListKey(params book.ListParams) string {
	return fmt.Sprintf("books:list:%d:%d:%s", params.Page, params.PageSize, params.Keyword)
}
