package book

import (
	"errors"
	"testing"
)

// TestNewBook 测试图书工厂方法
func TestNewBook(t *testing.T) {
	b, err := NewBook("Dune", "Frank Herbert", "9780441172719", "SciFi", 2)
	if err != nil {
		t.Fatalf("期望创建成功，实际失败: %v", err)
	}

	if b.TotalCopies != 2 {
		t.Errorf("期望总副本数2，实际%d", b.TotalCopies)
	}

	// 新建图书全部副本可借
	if b.AvailableCopies != b.TotalCopies {
		t.Errorf("期望可借副本数等于总副本数，实际%d != %d", b.AvailableCopies, b.TotalCopies)
	}

	if b.OnLoan() != 0 {
		t.Errorf("新建图书借出数应为0，实际%d", b.OnLoan())
	}
}

// TestNewBook_Validation 测试必填字段校验
func TestNewBook_Validation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		author      string
		category    string
		totalCopies int
		wantErr     error
	}{
		{"书名为空", "", "Herbert", "SciFi", 1, ErrEmptyTitle},
		{"书名全空格", "   ", "Herbert", "SciFi", 1, ErrEmptyTitle},
		{"作者为空", "Dune", "", "SciFi", 1, ErrEmptyAuthor},
		{"分类为空", "Dune", "Herbert", "", 1, ErrEmptyCategory},
		{"总副本数为负", "Dune", "Herbert", "SciFi", -1, ErrNegativeTotalCopies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBook(tt.title, tt.author, "", tt.category, tt.totalCopies)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望错误%v，实际%v", tt.wantErr, err)
			}
		})
	}
}

// TestNewBook_ZeroCopies 零副本图书允许创建(录入在途馆藏)
func TestNewBook_ZeroCopies(t *testing.T) {
	b, err := NewBook("Dune", "Herbert", "", "SciFi", 0)
	if err != nil {
		t.Fatalf("期望创建成功，实际失败: %v", err)
	}
	if b.AvailableCopies != 0 {
		t.Errorf("期望可借副本数0，实际%d", b.AvailableCopies)
	}
	if b.HasAvailableCopy() {
		t.Error("零副本图书不应可借")
	}
}

// TestApplyEdit_PreservesOnLoan 编辑总副本数必须保持借出中数量不变
// 场景:总数5,可借3(借出2),总数改成8 → 可借应变为6(8-2)
func TestApplyEdit_PreservesOnLoan(t *testing.T) {
	b := &Book{Title: "Dune", Author: "Herbert", Category: "SciFi", TotalCopies: 5, AvailableCopies: 3}

	if err := b.ApplyEdit("Dune", "Herbert", "", "SciFi", 8); err != nil {
		t.Fatalf("期望编辑成功，实际失败: %v", err)
	}

	if b.AvailableCopies != 6 {
		t.Errorf("期望可借副本数6，实际%d", b.AvailableCopies)
	}
	if b.OnLoan() != 2 {
		t.Errorf("借出数应保持2，实际%d", b.OnLoan())
	}
}

// TestApplyEdit_ShrinkBelowOnLoan 总副本数缩减到小于借出数
// 已知并被接受的行为:可借数变为负数("超借"),不截断也不报错
func TestApplyEdit_ShrinkBelowOnLoan(t *testing.T) {
	// 总数5,可借1(借出4)
	b := &Book{Title: "Dune", Author: "Herbert", Category: "SciFi", TotalCopies: 5, AvailableCopies: 1}

	if err := b.ApplyEdit("Dune", "Herbert", "", "SciFi", 2); err != nil {
		t.Fatalf("期望编辑成功，实际失败: %v", err)
	}

	// 2 - 4 = -2
	if b.AvailableCopies != -2 {
		t.Errorf("期望可借副本数-2，实际%d", b.AvailableCopies)
	}
	if b.HasAvailableCopy() {
		t.Error("超借状态下不应可借")
	}
}

// TestApplyEdit_Validation 编辑的字段校验与创建一致
func TestApplyEdit_Validation(t *testing.T) {
	b := &Book{Title: "Dune", Author: "Herbert", Category: "SciFi", TotalCopies: 5, AvailableCopies: 5}

	if err := b.ApplyEdit("", "Herbert", "", "SciFi", 5); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("期望ErrEmptyTitle，实际%v", err)
	}

	// 校验失败时实体不应被修改
	if b.Title != "Dune" || b.AvailableCopies != 5 {
		t.Error("校验失败后实体不应被修改")
	}
}
