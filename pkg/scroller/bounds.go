package scroller

import "github.com/decker502/scrollkit/pkg/layout"

// Bounds 是边界到达状态的位掩码
// 每轮布局重新计算，不跨轮持久化
type Bounds uint8

const (
	// BoundsNone 两端都不在视口内
	BoundsNone Bounds = 0
	// BoundsFirst 序列起始端已完全进入视口
	BoundsFirst Bounds = 1 << 0
	// BoundsLast 序列结束端已完全进入视口
	BoundsLast Bounds = 1 << 1
	// BoundsBoth 两端都在视口内（内容小于视口）
	BoundsBoth = BoundsFirst | BoundsLast
)

// First 返回起始端是否到达
func (b Bounds) First() bool {
	return b&BoundsFirst != 0
}

// Last 返回结束端是否到达
func (b Bounds) Last() bool {
	return b&BoundsLast != 0
}

// detectBounds 从当前锚点和窗口布局结果计算边界到达状态
//
// 起始端成立的条件：锚点是序列的第一个条目、基础控制器报告已遍历到
// 序列起点、且锚点前缘位于 0 或其后。
//
// 结束端通过沿窗口的正向遍历确认：任何中间条目的 Spec 缺失或
// TrueSizeRequested 时提前放弃（本轮只给出 FIRST/NONE 的临时结论，
// LAST 判定推迟到尺寸解析后的后续轮次）。成立时额外计算
// lastScrollOffset = (视口尺寸 − 末条目后缘) + 当前偏移，
// 即"结束端与视口齐平"所允许的最大偏移。
func (c *Controller) detectBounds(size [2]float64, offset float64) {
	c.bounds = BoundsNone
	c.lastScrollOffset = 0

	winLen := c.flow.WindowLen()
	if c.anchor == nil || c.anchor.Item() == nil || winLen == 0 {
		return
	}
	window := c.specs[:winLen]
	axis := c.axis

	anchorSpec := layout.SpecByItem(window, c.anchor.Item())
	if c.anchor.Prev().Item() == nil && c.flow.EndReached(true) &&
		anchorSpec != nil && !anchorSpec.TrueSizeRequested &&
		anchorSpec.OffsetAlong(axis) >= 0 {
		c.bounds |= BoundsFirst
	}

	for _, s := range window {
		if s == nil || s.TrueSizeRequested {
			return
		}
	}
	lastEdge := window[winLen-1].TrailingEdge(axis)
	if c.flow.EndReached(false) && lastEdge <= size[axis] {
		c.bounds |= BoundsLast
		c.lastScrollOffset = size[axis] - lastEdge + offset
	}
}

// updateSpring 根据边界状态计算弹簧锚点并更新物理模型
//
// 越过起始端（偏移 > 0）时弹簧拉回 0；越过结束端时拉回 lastScrollOffset；
// 内容小于视口（两端同时到达）时钉在起始端；其余情况弹簧脱开。
// 弹簧锚点以粒子坐标表示：目标偏移与当前偏移之差叠加到粒子位置上。
func (c *Controller) updateSpring(offset float64) {
	var target float64
	attached := false
	switch {
	case c.bounds.First() && c.bounds.Last():
		if offset != 0 {
			target = 0
			attached = true
		}
	case c.bounds.First():
		if offset > 0 {
			target = 0
			attached = true
		}
	case c.bounds.Last():
		if offset < c.lastScrollOffset {
			target = c.lastScrollOffset
			attached = true
		}
	}
	if !attached {
		c.model.SetEdgeSpring(nil)
		return
	}
	particleTarget := c.model.Position() + (target - offset)
	c.model.SetEdgeSpring(&particleTarget)
}
