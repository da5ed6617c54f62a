package layout

import "time"

// Func 是布局函数：在一轮布局中为窗口内的条目设置目标属性
//
// 布局函数必须是偏移稳定的：对同一（尺寸、滚动偏移、序列）输入产生
// 相同的布局结果，否则提交编排器的定点迭代无法收敛。
type Func func(ctx *Context)

// Context 是一轮布局中交给布局函数的上下文
// 通过 Next/Prev 从锚点向两侧懒遍历序列，遍历到的条目自动获得布局节点
// 并进入本轮窗口；Set 为节点写入目标属性。
type Context struct {
	// Size 视口尺寸 [宽, 高]
	Size [2]float64

	// Axis 滚动轴
	Axis Axis

	// ScrollOffset 本轮布局使用的有效滚动偏移
	// 锚点条目的前缘应放置在该偏移处
	ScrollOffset float64

	flow    *Flow
	now     time.Time
	nextCur Cursor
	prevCur Cursor
}

// Next 返回锚点之后（含锚点）的下一个条目的节点
// 序列结束时返回 nil 并记录"结束端已到达"
func (c *Context) Next() *Node {
	if c.nextCur == nil {
		c.flow.endSeen = true
		return nil
	}
	item := c.nextCur.Item()
	if item == nil {
		c.flow.endSeen = true
		return nil
	}
	n := c.flow.acquire(item)
	c.flow.window = append(c.flow.window, n)
	c.nextCur = c.nextCur.Next()
	c.flow.tail = c.nextCur
	return n
}

// Prev 返回当前窗口之前的上一个条目的节点
// 序列起点之前返回 nil 并记录"起始端已到达"
func (c *Context) Prev() *Node {
	if c.prevCur == nil {
		c.flow.startSeen = true
		return nil
	}
	c.prevCur = c.prevCur.Prev()
	item := c.prevCur.Item()
	if item == nil {
		c.flow.startSeen = true
		return nil
	}
	n := c.flow.acquire(item)
	c.flow.window = append([]*Node{n}, c.flow.window...)
	return n
}

// Set 为节点写入目标属性（等价于 node.Set，使用本轮布局的时间戳）
func (c *Context) Set(n *Node, set SetOptions) {
	n.Set(set, c.now)
}

// Now 返回本轮布局的时间戳
func (c *Context) Now() time.Time {
	return c.now
}
