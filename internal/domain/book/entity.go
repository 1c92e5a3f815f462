package book

import (
	"strings"
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. Book是图书聚合的根实体,记录馆藏副本数与可借副本数
// 2. AvailableCopies与借阅记录联动:借出-1,归还/撤销+1
// 3. 核心不变式: available_copies = total_copies - 处于"借出中"状态的借阅数
// 4. ISBN为可选字段,本系统不强制唯一(同一ISBN可能有不同馆藏批次)
type Book struct {
	ID              uint
	Title           string // 书名
	Author          string // 作者
	ISBN            string // ISBN号(可选)
	Category        string // 分类
	TotalCopies     int    // 馆藏总副本数
	AvailableCopies int    // 当前可借副本数
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 业务规则:
// - 书名/作者/分类必填
// - 总副本数不能为负数
// - 新建图书全部副本可借(available = total)
func NewBook(title, author, isbn, category string, totalCopies int) (*Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(author) == "" {
		return nil, ErrEmptyAuthor
	}
	if strings.TrimSpace(category) == "" {
		return nil, ErrEmptyCategory
	}
	if totalCopies < 0 {
		return nil, ErrNegativeTotalCopies
	}

	now := time.Now()
	return &Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		Category:        category,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// OnLoan 当前借出中的副本数
func (b *Book) OnLoan() int {
	return b.TotalCopies - b.AvailableCopies
}

// HasAvailableCopy 是否还有可借副本
func (b *Book) HasAvailableCopy() bool {
	return b.AvailableCopies > 0
}

// ApplyEdit 编辑图书信息(领域行为)
// 业务规则:
// 1. 必填字段校验与NewBook一致
// 2. 调整总副本数时必须保持借出中数量不变:
//    new_available = new_total - on_loan
// 3. 注意:当new_total小于当前借出数时,available会变为负数。
//    这是已知并被接受的行为(馆藏缩减不追回已借出的书),
//    负数表示"超借",在所有副本归还前该书不可再借出。
func (b *Book) ApplyEdit(title, author, isbn, category string, totalCopies int) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(author) == "" {
		return ErrEmptyAuthor
	}
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	if totalCopies < 0 {
		return ErrNegativeTotalCopies
	}

	onLoan := b.OnLoan()

	b.Title = title
	b.Author = author
	b.ISBN = isbn
	b.Category = category
	b.TotalCopies = totalCopies
	b.AvailableCopies = totalCopies - onLoan
	b.UpdatedAt = time.Now()
	return nil
}
