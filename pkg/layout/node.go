package layout

import (
	"time"

	"github.com/decker502/scrollkit/pkg/utils"
)

// Node 是单个条目的布局节点
//
// 节点持有条目的已提交属性和一个可选的进行中过渡（插值状态机）。
// 状态机只有两个状态：
//   - 已提交：Spec() 直接由 committed 通道合成
//   - 过渡中：Spec() 由 start→target 按缓动进度插值合成，进度到 1 后退役
//
// 生命周期：条目进入可见窗口时创建；每轮布局前 Reset() 清除失效标记；
// 布局函数通过 Set() 写入目标属性；离开窗口后 Remove() 标记异步移除，
// 移除过渡播完之前节点继续渲染，之后由 Flow 回收销毁。
type Node struct {
	// item 所属条目
	// 按接口值做身份比较（窗口归一化依赖 Spec.Item == cursor.Item()）
	item Item

	// committed 已提交的属性通道（等于最近一次过渡的最终值）
	committed channels

	hide     bool
	trueSize bool

	invalidated bool
	removing    bool

	// preRemove 进入移除流程前的已提交通道快照
	// 复活时恢复，避免节点带着移除过渡的目标值（如 0 不透明度）回到窗口
	preRemove *channels

	interp *interpolation
}

// interpolation 是进行中的过渡
// start/target 在启动时记录，读取时按进度插值，不修改已提交通道
type interpolation struct {
	start    channels
	target   channels
	startAt  time.Time
	duration time.Duration
	easing   func(float64) float64
}

// progress 返回 [0,1] 范围内的缓动前进度（随时间单调不减）
func (it *interpolation) progress(now time.Time) float64 {
	if it.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(it.startAt)) / float64(it.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// at 返回当前时刻的插值结果
func (it *interpolation) at(now time.Time) channels {
	return it.start.lerp(it.target, it.easing(it.progress(now)))
}

// NewNode 创建条目的布局节点
// viewport 作为尺寸的初始回退值（条目在首次 Set 之前没有自己的尺寸）
func NewNode(item Item, viewport [2]float64) *Node {
	return &Node{
		item:      item,
		committed: defaultChannels(viewport),
	}
}

// Item 返回节点所属的条目
func (n *Node) Item() Item {
	return n.item
}

// Reset 在每轮布局开始前清除瞬态失效标记
func (n *Node) Reset() {
	n.invalidated = false
}

// Invalidated 返回本轮布局是否触碰过该节点
func (n *Node) Invalidated() bool {
	return n.invalidated
}

// Removing 返回节点是否处于移除流程中
func (n *Node) Removing() bool {
	return n.removing
}

// Set 写入声明式目标属性集并标记节点失效
//
// 过渡规则：
//   - 无 Transition 或 Duration <= 0：目标值立即提交，取消进行中的过渡
//   - 有 Transition 且当前无过渡：以已提交值为起点启动过渡
//   - 有 Transition 且已有过渡在进行：以"当前插值结果"为新起点重定向，
//     保证重定向前后同一时刻的读取值相等（无视觉跳变）
func (n *Node) Set(set SetOptions, now time.Time) {
	n.invalidated = true
	if set.Hide != nil {
		n.hide = *set.Hide
	}
	if set.TrueSizeRequested != nil {
		n.trueSize = *set.TrueSizeRequested
	}

	target := n.committed.apply(set)

	if set.Transition == nil || set.Transition.Duration <= 0 {
		n.committed = target
		n.interp = nil
		return
	}

	start := n.committed
	if n.interp != nil {
		start = n.interp.at(now)
	}
	easing := set.Transition.Easing
	if easing == nil {
		easing = utils.EaseInOutQuad
	}
	n.interp = &interpolation{
		start:    start,
		target:   target,
		startAt:  now,
		duration: set.Transition.Duration,
		easing:   easing,
	}
	// committed 始终保存最终值；过渡期间的读取走插值
	n.committed = target
}

// Remove 标记节点异步移除
// removeSpec 非 nil 时作为移除过渡的目标属性集（典型用法：不透明度渐隐）
// 节点在移除过渡播完之前继续出现在布局结果中
func (n *Node) Remove(removeSpec *SetOptions, now time.Time) {
	if n.removing {
		return
	}
	n.removing = true
	if removeSpec != nil {
		snapshot := n.committed
		n.preRemove = &snapshot
		n.Set(*removeSpec, now)
		// Remove 不算布局触碰
		n.invalidated = false
	}
}

// Revive 取消移除流程（条目重新回到可见窗口时调用）
// 已提交通道恢复到进入移除之前的快照
func (n *Node) Revive() {
	n.removing = false
	if n.preRemove != nil {
		n.committed = *n.preRemove
		n.preRemove = nil
		n.interp = nil
	}
}

// RemovalDone 返回移除过渡是否已经播完（无过渡时立即为 true）
func (n *Node) RemovalDone(now time.Time) bool {
	if !n.removing {
		return false
	}
	return n.interp == nil || n.interp.progress(now) >= 1
}

// Spec 生成当前时刻的布局结果（纯读取，返回新对象，不修改已提交属性）
// 过渡进行中时按插值结果合成；进度到达 1 后过渡退役，
// 之后的读取直接由已提交属性合成。
func (n *Node) Spec(now time.Time) *Spec {
	ch := n.committed
	if n.interp != nil {
		if n.interp.progress(now) >= 1 {
			n.interp = nil
		} else {
			ch = n.interp.at(now)
		}
	}
	return &Spec{
		Item:              n.item,
		Transform:         Build(ch.parts()),
		Size:              ch.size,
		Opacity:           ch.opacity,
		Origin:            ch.origin,
		Align:             ch.align,
		Hide:              n.hide,
		TrueSizeRequested: n.trueSize,
	}
}
