package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
)

type bookFixture struct {
	create *CreateBookUseCase
	get    *GetBookUseCase
	list   *ListBooksUseCase
	update *UpdateBookUseCase
	del    *DeleteBookUseCase

	bookRepo      *fakeBookRepo
	borrowingRepo *fakeBorrowingRepo
	cache         *fakeCache
}

func newBookFixture() *bookFixture {
	bookRepo := newFakeBookRepo()
	borrowingRepo := &fakeBorrowingRepo{}
	cache := newFakeCache()
	tx := &fakeTxManager{}
	svc := book.NewService(bookRepo)
	return &bookFixture{
		create:        NewCreateBookUseCase(svc, cache),
		get:           NewGetBookUseCase(svc),
		list:          NewListBooksUseCase(svc, cache),
		update:        NewUpdateBookUseCase(bookRepo, tx, cache),
		del:           NewDeleteBookUseCase(bookRepo, borrowingRepo, tx, cache),
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
		cache:         cache,
	}
}

// TestCreateBook 录入图书:available=total,列表缓存失效
func TestCreateBook(t *testing.T) {
	f := newBookFixture()

	resp, err := f.create.Execute(context.Background(), CreateBookRequest{
		Title:       "Dune",
		Author:      "Frank Herbert",
		ISBN:        "9780441172719",
		Category:    "SciFi",
		TotalCopies: 5,
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Dune", resp.Title)
	assert.Equal(t, 5, resp.TotalCopies)
	assert.Equal(t, 5, resp.AvailableCopies)
	assert.Equal(t, 1, f.cache.invalidated)
}

// TestCreateBook_Validation 领域校验错误透传,不落库
func TestCreateBook_Validation(t *testing.T) {
	f := newBookFixture()

	tests := []struct {
		name    string
		req     CreateBookRequest
		wantErr error
	}{
		{"书名为空", CreateBookRequest{Author: "A", Category: "C", TotalCopies: 1}, book.ErrEmptyTitle},
		{"作者为空", CreateBookRequest{Title: "T", Category: "C", TotalCopies: 1}, book.ErrEmptyAuthor},
		{"分类为空", CreateBookRequest{Title: "T", Author: "A", TotalCopies: 1}, book.ErrEmptyCategory},
		{"副本数为负", CreateBookRequest{Title: "T", Author: "A", Category: "C", TotalCopies: -1}, book.ErrNegativeTotalCopies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, total, err := f.bookRepo.List(context.Background(), book.ListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

// TestGetBook 详情查询
func TestGetBook(t *testing.T) {
	f := newBookFixture()
	created, err := f.create.Execute(context.Background(), CreateBookRequest{
		Title: "Dune", Author: "Herbert", Category: "SciFi", TotalCopies: 2,
	})
	require.NoError(t, err)

	resp, err := f.get.Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "Dune", resp.Title)

	_, err = f.get.Execute(context.Background(), 999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}
