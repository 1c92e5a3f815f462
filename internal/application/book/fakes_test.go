package book

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// fakeTxManager 内存版事务管理器(互斥锁模拟行锁串行化)
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeBookRepo 内存版图书仓储
type fakeBookRepo struct {
	mu     sync.Mutex
	books  map[uint]*book.Book
	nextID uint
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uint]*book.Book)}
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*book.Book
	for _, b := range r.books {
		if params.Keyword != "" &&
			!strings.Contains(b.Title, params.Keyword) &&
			!strings.Contains(b.Author, params.Keyword) &&
			!strings.Contains(b.Category, params.Keyword) {
			continue
		}
		cp := *b
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })

	total := int64(len(all))
	offset := (params.Page - 1) * params.PageSize
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + params.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) UpdateAvailableCopies(ctx context.Context, id uint, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if delta < 0 && b.AvailableCopies+delta < 0 {
		return book.ErrNoAvailableCopies
	}
	b.AvailableCopies += delta
	return nil
}

// fakeBorrowingRepo 删除用例的引用检查只需要CountByBookID,
// 其余方法在本包测试中不会被调用
type fakeBorrowingRepo struct {
	mu         sync.Mutex
	borrowings []*borrowing.Borrowing
}

func (r *fakeBorrowingRepo) add(bookID uint, status borrowing.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.borrowings = append(r.borrowings, &borrowing.Borrowing{
		ID:        uint(len(r.borrowings) + 1),
		BookID:    bookID,
		Status:    status,
		CreatedAt: time.Now(),
	})
}

func (r *fakeBorrowingRepo) Create(ctx context.Context, b *borrowing.Borrowing) error {
	return errors.New("not implemented")
}

func (r *fakeBorrowingRepo) FindByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeBorrowingRepo) LockByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeBorrowingRepo) Update(ctx context.Context, b *borrowing.Borrowing) error {
	return errors.New("not implemented")
}

func (r *fakeBorrowingRepo) Delete(ctx context.Context, id uint) error {
	return errors.New("not implemented")
}

func (r *fakeBorrowingRepo) List(ctx context.Context, params borrowing.ListParams) ([]*borrowing.ListItem, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (r *fakeBorrowingRepo) CountByBookID(ctx context.Context, bookID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.borrowings {
		if b.BookID == bookID {
			n++
		}
	}
	return n, nil
}

// fakeCache 内存版列表缓存,记录读写与失效次数
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]cacheEntry
	hits        int
	misses      int
	invalidated int
	failing     bool // 模拟Redis故障
}

type cacheEntry struct {
	books []*book.Book
	total int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]cacheEntry)}
}

func cacheKey(params book.ListParams) string {
	return fmt.Sprintf("%d:%d:%s", params.Page, params.PageSize, params.Keyword)
}

func (c *fakeCache) GetBookList(ctx context.Context, params book.ListParams) ([]*book.Book, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, 0, false, errors.New("redis: connection refused")
	}
	e, ok := c.entries[cacheKey(params)]
	if !ok {
		c.misses++
		return nil, 0, false, nil
	}
	c.hits++
	return e.books, e.total, true, nil
}

func (c *fakeCache) SetBookList(ctx context.Context, params book.ListParams, books []*book.Book, total int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("redis: connection refused")
	}
	c.entries[cacheKey(params)] = cacheEntry{books: books, total: total}
	return nil
}

func (c *fakeCache) InvalidateBookList(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.entries = make(map[string]cacheEntry)
	return nil
}

// 接口实现检查
var (
	_ TxManager            = (*fakeTxManager)(nil)
	_ Cache                = (*fakeCache)(nil)
	_ book.Repository      = (*fakeBookRepo)(nil)
	_ borrowing.Repository = (*fakeBorrowingRepo)(nil)
)
