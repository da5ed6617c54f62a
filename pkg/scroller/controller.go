// Package scroller 提供滚动布局引擎的提交编排器
//
// Controller 把物理偏移模型、基础流式布局控制器、窗口归一化和
// 边界判定串联成每帧一次的提交流程：
//
//	输入手势 → 物理模型（速度/位置）→ 读取有效偏移 → 基础控制器开窗
//	→ 布局函数定位条目 → 窗口归一化调整锚点与偏移 → 边界判定
//	→ 更新边界弹簧 → 结算滚轮增量 → 偏移变化则重跑一轮（定点迭代）
//	→ 输出最终布局结果
package scroller

import (
	"time"

	"github.com/decker502/scrollkit/pkg/config"
	"github.com/decker502/scrollkit/pkg/layout"
	"github.com/decker502/scrollkit/pkg/physics"
)

// CommitResult 是一次提交的输出，交给渲染后端消费
type CommitResult struct {
	// Size 视口尺寸
	Size [2]float64
	// Opacity 整体不透明度
	Opacity float64
	// Transform 整体变换
	Transform layout.Matrix
	// Embedded 为 true 时布局结果应嵌入独立容器渲染（容器内裁剪）
	Embedded bool
	// Specs 窗口内全部条目的布局结果（含移除过渡中的条目）
	Specs []*layout.Spec
}

// Controller 是滚动引擎的提交编排器
//
// 状态机只有两个状态：空闲（上次布局的尺寸与偏移缓存完全匹配，
// 无需重新布局）和布局中（执行完整布局轮次，必要时定点迭代）。
// 无论处于哪个状态，每次提交都会重建布局结果——条目的过渡动画
// 独立于布局推进。
//
// 单线程协作式模型：手势回调与提交都运行在同一事件循环上，
// 手势回调只修改物理模型的待定字段，其效果在下一次提交中完全可见。
type Controller struct {
	opts config.Options
	axis layout.Axis

	flow     *layout.Flow
	model    *physics.ScrollModel
	layoutFn layout.Func
	anchor   layout.Cursor

	removeSpec *layout.SetOptions

	bounds           Bounds
	lastScrollOffset float64

	specs []*layout.Spec

	committedSize   [2]float64
	committedOffset float64
	hasCommitted    bool
	dirty           bool
}

// New 创建滚动控制器
//
// anchor 是初始锚点（通常指向序列第一个条目），layoutFn 为激活的
// 布局函数（如 layouts.List），opts 提供物理与过渡参数。
func New(anchor layout.Cursor, layoutFn layout.Func, opts config.Options) *Controller {
	axis := opts.Axis()
	c := &Controller{
		opts:     opts,
		axis:     axis,
		flow:     layout.NewFlow(axis),
		model:    physics.NewScrollModel(opts.ParticleRounding, opts.Drag, opts.Spring()),
		layoutFn: layoutFn,
		anchor:   anchor,
	}
	if t := opts.RemoveTransition(); t != nil {
		opacity := 0.0
		c.removeSpec = &layout.SetOptions{Opacity: &opacity, Transition: t}
	}
	return c
}

// SetRemoveSpec 覆盖条目移除时应用的目标属性集（nil 表示立即移除）
func (c *Controller) SetRemoveSpec(set *layout.SetOptions) {
	c.removeSpec = set
}

// Axis 返回滚动轴
func (c *Controller) Axis() layout.Axis {
	return c.axis
}

// Bounds 返回最近一轮布局的边界到达状态
func (c *Controller) Bounds() Bounds {
	return c.bounds
}

// ScrollOffset 返回最近一次提交使用的有效滚动偏移
func (c *Controller) ScrollOffset() float64 {
	return c.committedOffset
}

// AnchorItem 返回当前锚点条目（持久化滚动状态时使用），无锚点返回 nil
func (c *Controller) AnchorItem() layout.Item {
	if c.anchor == nil {
		return nil
	}
	return c.anchor.Item()
}

// SetAnchor 重置锚点游标并将粒子位置设为 offset（恢复持久化状态时使用）
func (c *Controller) SetAnchor(anchor layout.Cursor, offset float64) {
	c.anchor = anchor
	c.model.SetPosition(offset)
	c.dirty = true
}

// RequestLayout 强制下一次提交执行完整布局（外部条目内容变化时调用）
func (c *Controller) RequestLayout() {
	c.dirty = true
}

// ApplyStart 把手势开始事件转交物理模型
func (c *Controller) ApplyStart(e physics.Event) {
	c.model.ApplyStart(e)
}

// ApplyUpdate 把手势更新事件转交物理模型
func (c *Controller) ApplyUpdate(e physics.Event) {
	c.model.ApplyUpdate(e)
}

// ApplyEnd 把手势结束事件转交物理模型
func (c *Controller) ApplyEnd(e physics.Event) {
	c.model.ApplyEnd(e)
}

// Moving 返回滚动是否仍在进行（惯性滑行或弹簧未收敛）
func (c *Controller) Moving() bool {
	return c.model.Moving()
}

// Step 推进物理模型一个时间步（每个外部帧 tick 调用一次）
func (c *Controller) Step(dt float64) {
	c.model.Step(dt)
}

// Commit 执行一次提交：必要时布局（含定点迭代），并重建布局结果
//
// 定点迭代在实践中至多重复很少的几轮（边界钳制后偏移修正收敛）；
// 布局函数不是偏移稳定时迭代可能不收敛，这是调用方的契约义务。
func (c *Controller) Commit(size [2]float64, now time.Time) *CommitResult {
	offset := c.model.EffectiveOffset(c.bounds.First(), c.bounds.Last())

	if !c.hasCommitted || c.dirty || size != c.committedSize || offset != c.committedOffset {
		for {
			c.layoutPass(size, offset, now)
			offset = c.normalizeWindow(size, offset)
			c.detectBounds(size, offset)
			c.updateSpring(offset)
			if !c.model.Integrate(c.bounds.First(), c.bounds.Last(), c.lastScrollOffset) {
				break
			}
			offset = c.model.EffectiveOffset(c.bounds.First(), c.bounds.Last())
		}
		c.committedSize = size
		c.committedOffset = offset
		c.hasCommitted = true
		c.dirty = false
	}

	// 重新渲染每次提交都发生（即使布局空闲）：条目过渡独立推进
	return &CommitResult{
		Size:      size,
		Opacity:   1,
		Transform: layout.Identity(),
		Embedded:  c.opts.EmbedContainer,
		Specs:     c.flow.BuildSpecs(now),
	}
}

// layoutPass 执行一轮完整布局：开窗 → 布局函数 → 移除未触碰节点 → 构建结果
func (c *Controller) layoutPass(size [2]float64, offset float64, now time.Time) {
	ctx := c.flow.PrepareForLayout(c.anchor, size, offset, now)
	if c.layoutFn != nil {
		c.layoutFn(ctx)
	}
	c.flow.RemoveNonInvalidatedNodes(c.removeSpec, now)
	c.specs = c.flow.BuildSpecs(now)
}
