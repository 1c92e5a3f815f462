package borrowing

import (
	"strings"
	"time"
)

// Status 借阅状态
// 教学要点:
// 1. 使用int类型而非string(节省存储空间,便于索引)
// 2. 定义为类型别名,便于添加方法
// 3. 状态流转是线性的:borrowed → returned(终态),
//    或borrowed → 记录被撤销删除(同样是终态)
type Status int

const (
	StatusBorrowed Status = 1 // 借出中
	StatusReturned Status = 2 // 已归还
)

// String 实现Stringer接口(对外API与日志均使用英文状态值)
func (s Status) String() string {
	switch s {
	case StatusBorrowed:
		return "borrowed"
	case StatusReturned:
		return "returned"
	default:
		return "unknown"
	}
}

// Borrowing 借阅记录实体
// 设计说明:
// 1. 只保存BookID,不直接关联Book对象(避免跨聚合引用)
// 2. ReturnDate使用指针类型,NULL表示尚未归还;整个生命周期内最多被赋值一次
// 3. CreatedAt即借出时间,创建后不可变
type Borrowing struct {
	ID           uint
	BookID       uint       // 图书ID
	BorrowerName string     // 借阅人姓名
	Status       Status     // 借阅状态
	ReturnDate   *time.Time // 归还日期(未归还时为nil)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBorrowing 创建新借阅记录(工厂方法)
// 业务规则:
// - BookID必填
// - 借阅人姓名必填
// - 初始状态为借出中
func NewBorrowing(bookID uint, borrowerName string) (*Borrowing, error) {
	if bookID == 0 {
		return nil, ErrInvalidBookID
	}
	if strings.TrimSpace(borrowerName) == "" {
		return nil, ErrEmptyBorrowerName
	}

	now := time.Now()
	return &Borrowing{
		BookID:       bookID,
		BorrowerName: borrowerName,
		Status:       StatusBorrowed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Return 归还(领域行为)
// 业务规则:
// 1. 只有借出中的记录可以归还
// 2. 重复归还返回ErrAlreadyReturned(幂等边界:第二次调用必须失败,
//    对应的副本数也只能增加一次)
func (b *Borrowing) Return(now time.Time) error {
	if b.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	b.Status = StatusReturned
	b.ReturnDate = &now
	b.UpdatedAt = now
	return nil
}

// EnsureCancelable 校验是否允许撤销(删除)本条借阅
// 业务规则:已归还的借阅是历史事实,不允许撤销
func (b *Borrowing) EnsureCancelable() error {
	if b.Status == StatusReturned {
		return ErrBorrowingCompleted
	}
	return nil
}
