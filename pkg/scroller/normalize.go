package scroller

import "github.com/decker502/scrollkit/pkg/layout"

// normalizeWindow 视图窗口归一化
//
// 把锚点尽量移向"离视口起点最近且仍至少部分可见"的条目，用序列位置
// 换取粒子偏移，使后续轮次需要布局的条目数最少。锚点交换时把新旧
// 锚点条目的前缘差同时从粒子位置和工作偏移中加减（世界坐标重新以
// 新锚点为基准），有效偏移值因此保持不变——归一化是幂等的。
//
// 偏移 >= 0（内容向起始端滚出空隙）：从锚点向前（序列上游）走，
// 逐个把上一条目提升为锚点；候选条目的 Spec 缺失、尺寸未解析
// （TrueSizeRequested）、或后缘为负（完全滚出视口起点之外）时停止。
//
// 偏移 < 0（内容向结束端滚动）：仅当末条目后缘已到达或越过视口末端
// （结束端没有待填补的空隙）时才归一化；从锚点向后走，锚点自身的
// 后缘 >= 0（仍在屏上）、Spec 缺失或尺寸未解析时停止。
//
// 空窗口或无锚点时原样返回输入偏移。
func (c *Controller) normalizeWindow(size [2]float64, offset float64) float64 {
	winLen := c.flow.WindowLen()
	if c.anchor == nil || c.anchor.Item() == nil || winLen == 0 {
		return offset
	}
	window := c.specs[:winLen]

	if offset >= 0 {
		offset = c.promoteBackward(window, offset)
	} else {
		offset = c.promoteForward(window, size, offset)
	}
	// EndReached 的游标探测基于开窗时记录的锚点，锚点被提升后必须同步
	c.flow.UpdateAnchor(c.anchor)
	return offset
}

// promoteBackward 向序列上游逐个提升锚点
// 平移量取新旧锚点条目的前缘差：布局函数可能在条目间留有间距，
// 用条目尺寸平移会使下一轮布局整体错位一个间距。
func (c *Controller) promoteBackward(window []*layout.Spec, offset float64) float64 {
	axis := c.axis
	anchorSpec := layout.SpecByItem(window, c.anchor.Item())
	for anchorSpec != nil {
		prev := c.anchor.Prev()
		item := prev.Item()
		if item == nil {
			break
		}
		spec := layout.SpecByItem(window, item)
		if spec == nil || spec.TrueSizeRequested {
			break
		}
		if spec.TrailingEdge(axis) < 0 {
			break
		}
		shift := anchorSpec.OffsetAlong(axis) - spec.OffsetAlong(axis)
		c.anchor = prev
		c.model.ShiftPosition(-shift)
		offset -= shift
		anchorSpec = spec
	}
	return offset
}

// promoteForward 向序列下游逐个提升锚点
func (c *Controller) promoteForward(window []*layout.Spec, size [2]float64, offset float64) float64 {
	axis := c.axis
	last := window[len(window)-1]
	if last.TrailingEdge(axis) < size[axis] {
		return offset
	}
	for offset < 0 {
		spec := layout.SpecByItem(window, c.anchor.Item())
		if spec == nil || spec.TrueSizeRequested {
			break
		}
		if spec.TrailingEdge(axis) >= 0 {
			break
		}
		next := c.anchor.Next()
		if next.Item() == nil {
			break
		}
		nextSpec := layout.SpecByItem(window, next.Item())
		if nextSpec == nil || nextSpec.TrueSizeRequested {
			break
		}
		shift := nextSpec.OffsetAlong(axis) - spec.OffsetAlong(axis)
		c.anchor = next
		c.model.ShiftPosition(shift)
		offset += shift
	}
	return offset
}
