// Package layouts 提供内置布局函数
package layouts

import "github.com/decker502/scrollkit/pkg/layout"

// ListOptions 是列表布局的参数
type ListOptions struct {
	// ItemSize 条目在滚动轴上的固定尺寸
	// <= 0 表示使用条目自报尺寸（layout.Sizer），即"真实尺寸"模式
	ItemSize float64

	// Spacing 相邻条目之间的间距
	Spacing float64

	// EstimatedSize 真实尺寸尚未解析时使用的估计尺寸
	// <= 0 时使用默认值 100
	EstimatedSize float64
}

const defaultEstimatedSize = 100.0

// List 返回单轴顺序排列的列表布局函数
//
// 从锚点开始向后排列条目直到填满视口，再向前回填锚点之前的空隙。
// 条目的交叉轴尺寸始终等于视口的交叉轴尺寸。
// 真实尺寸模式下，条目尺寸未解析时使用估计尺寸并标记 TrueSizeRequested。
func List(opts ListOptions) layout.Func {
	estimated := opts.EstimatedSize
	if estimated <= 0 {
		estimated = defaultEstimatedSize
	}
	return func(ctx *layout.Context) {
		axis := ctx.Axis

		// 向后排列：锚点条目前缘位于滚动偏移处
		pos := ctx.ScrollOffset
		for pos < ctx.Size[axis] {
			node := ctx.Next()
			if node == nil {
				break
			}
			size, unresolved := itemSize(node.Item(), opts, axis, estimated)
			place(ctx, node, axis, pos, size, unresolved)
			pos += size + opts.Spacing
		}

		// 向前回填：偏移大于 0 时锚点之前存在可见空隙
		pos = ctx.ScrollOffset
		for pos > 0 {
			node := ctx.Prev()
			if node == nil {
				break
			}
			size, unresolved := itemSize(node.Item(), opts, axis, estimated)
			pos -= size + opts.Spacing
			place(ctx, node, axis, pos, size, unresolved)
		}
	}
}

// itemSize 解析条目在滚动轴上的尺寸
// 返回的 unresolved 为 true 表示使用了估计尺寸
func itemSize(item layout.Item, opts ListOptions, axis layout.Axis, estimated float64) (float64, bool) {
	if opts.ItemSize > 0 {
		return opts.ItemSize, false
	}
	if sizer, ok := item.(layout.Sizer); ok {
		if size, resolved := sizer.ItemSize(axis); resolved {
			return size, false
		}
	}
	return estimated, true
}

// place 写入条目的位置与尺寸
func place(ctx *layout.Context, node *layout.Node, axis layout.Axis, pos, size float64, unresolved bool) {
	var sizeVec [2]float64
	sizeVec[axis] = size
	sizeVec[axis.Other()] = ctx.Size[axis.Other()]

	var translate [3]float64
	translate[axis] = pos

	ctx.Set(node, layout.SetOptions{
		Size:              &sizeVec,
		Translate:         &translate,
		TrueSizeRequested: &unresolved,
	})
}
