package borrowing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrowing"
)

// fakeTxManager 内存版事务管理器
// 教学要点:用互斥锁模拟数据库行锁的串行化效果——
// 真实场景下两个并发事务会在SELECT FOR UPDATE处排队,
// 这里让整个事务函数串行执行,并发测试因此是确定性的
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

func (r *fakeBookRepo) put(b *book.Book) *book.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.books[b.ID] = &cp
	return b
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.put(b)
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
	var out []*book.Book
	for _, b := range r.books {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, int64(len(out)), nil
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
	// 与条件更新语义一致:借出受available_copies + delta >= 0保护,
	// 归还/撤销无条件执行(可借数为负的"超借"状态也能还回来)
	if delta < 0 && b.AvailableCopies+delta < 0 {
		return book.ErrNoAvailableCopies
	}
	b.AvailableCopies += delta
	b.UpdatedAt = time.Now()
	return nil
}

// fakeBorrowingRepo 内存版借阅仓储
type fakeBorrowingRepo struct {
	mu         sync.Mutex
	borrowings map[uint]*borrowing.Borrowing
	nextID     uint
}

func newFakeBorrowingRepo() *fakeBorrowingRepo {
	return &fakeBorrowingRepo{borrowings: make(map[uint]*borrowing.Borrowing)}
}

func (r *fakeBorrowingRepo) Create(ctx context.Context, b *borrowing.Borrowing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.borrowings[b.ID] = &cp
	return nil
}

func (r *fakeBorrowingRepo) FindByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.borrowings[id]
	if !ok {
		return nil, borrowing.ErrBorrowingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBorrowingRepo) LockByID(ctx context.Context, id uint) (*borrowing.Borrowing, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBorrowingRepo) Update(ctx context.Context, b *borrowing.Borrowing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.borrowings[b.ID]; !ok {
		return borrowing.ErrBorrowingNotFound
	}
	cp := *b
	r.borrowings[b.ID] = &cp
	return nil
}

func (r *fakeBorrowingRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.borrowings[id]; !ok {
		return borrowing.ErrBorrowingNotFound
	}
	delete(r.borrowings, id)
	return nil
}

func (r *fakeBorrowingRepo) List(ctx context.Context, params borrowing.ListParams) ([]*borrowing.ListItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*borrowing.ListItem
	for _, b := range r.borrowings {
		out = append(out, &borrowing.ListItem{
			ID:           b.ID,
			BookID:       b.BookID,
			BorrowerName: b.BorrowerName,
			Status:       b.Status,
			ReturnDate:   b.ReturnDate,
			CreatedAt:    b.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
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

func (r *fakeBorrowingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.borrowings)
}

// fakeCache 记录缓存失效次数
type fakeCache struct {
	mu          sync.Mutex
	invalidated int
}

func (c *fakeCache) InvalidateBookList(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

// 接口实现检查
var (
	_ TxManager            = (*fakeTxManager)(nil)
	_ BookCache            = (*fakeCache)(nil)
	_ book.Repository      = (*fakeBookRepo)(nil)
	_ borrowing.Repository = (*fakeBorrowingRepo)(nil)
)

// mustBook 测试辅助:向仓储放入一本指定副本数的图书
func mustBook(repo *fakeBookRepo, title string, total, available int) *book.Book {
	b := &book.Book{
		Title:           title,
		Author:          "Test Author",
		Category:        "Test",
		TotalCopies:     total,
		AvailableCopies: available,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	return repo.put(b)
}
