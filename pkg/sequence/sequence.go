// Package sequence 提供视图序列的切片实现
//
// 滚动引擎通过 layout.Cursor 接口懒遍历条目序列，序列本身由调用方拥有。
// 本包给出最常用的切片后备实现；无限/分页序列可由调用方自行实现
// layout.Cursor 接入。
package sequence

import "github.com/decker502/scrollkit/pkg/layout"

// Slice 是切片后备的双向条目序列
type Slice struct {
	items []layout.Item
}

// NewSlice 创建序列
func NewSlice(items ...layout.Item) *Slice {
	return &Slice{items: items}
}

// Len 返回条目数
func (s *Slice) Len() int {
	return len(s.items)
}

// Append 在序列末尾追加条目
func (s *Slice) Append(items ...layout.Item) {
	s.items = append(s.items, items...)
}

// Insert 在 index 处插入条目（index 越界时钳制到两端）
func (s *Slice) Insert(index int, item layout.Item) {
	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items, nil)
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = item
}

// RemoveAt 删除 index 处的条目，越界时不做任何事
func (s *Slice) RemoveAt(index int) {
	if index < 0 || index >= len(s.items) {
		return
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
}

// Cursor 返回指向 index 处的游标
// index 允许越界：越界游标的 Item() 返回 nil，但仍可向回移动
func (s *Slice) Cursor(index int) layout.Cursor {
	return cursor{seq: s, index: index}
}

// cursor 是 Slice 的游标实现（值类型，移动返回新游标）
type cursor struct {
	seq   *Slice
	index int
}

// Item 返回游标处的条目，越界返回 nil
func (c cursor) Item() layout.Item {
	if c.index < 0 || c.index >= len(c.seq.items) {
		return nil
	}
	return c.seq.items[c.index]
}

// Next 返回指向下一个条目的游标
func (c cursor) Next() layout.Cursor {
	return cursor{seq: c.seq, index: c.index + 1}
}

// Prev 返回指向上一个条目的游标
func (c cursor) Prev() layout.Cursor {
	return cursor{seq: c.seq, index: c.index - 1}
}
