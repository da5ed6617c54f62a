package layout

import "time"

// Flow 是流式布局的基础控制器，负责布局节点的簿记
//
// 职责：
//   - 按条目 ID 维护节点集合（进入窗口时创建，移除过渡播完后销毁）
//   - 每轮布局前重置节点的失效标记（PrepareForLayout）
//   - 布局后把未被触碰的节点转入移除流程（RemoveNonInvalidatedNodes）
//   - 按窗口顺序构建布局结果并回收已完成移除的节点（BuildSpecs）
//   - 报告序列两端是否已被遍历到（EndReached）
//
// 节点的标记-回收节奏与实体管理器的"标记删除、统一清理"一致：
// 移除不是立即销毁，节点在移除过渡播完之前继续出现在布局结果里。
type Flow struct {
	axis Axis

	nodes    map[string]*Node
	window   []*Node
	removing []*Node

	viewport [2]float64

	startSeen bool
	endSeen   bool
	anchor    Cursor
	tail      Cursor
}

// NewFlow 创建流式布局控制器
func NewFlow(axis Axis) *Flow {
	return &Flow{
		axis:  axis,
		nodes: make(map[string]*Node),
	}
}

// Axis 返回滚动轴
func (f *Flow) Axis() Axis {
	return f.axis
}

// PrepareForLayout 开始一轮布局
// 清空上一轮的窗口与遍历标记，重置所有节点的失效标记，
// 返回交给布局函数使用的上下文。
func (f *Flow) PrepareForLayout(anchor Cursor, size [2]float64, scrollOffset float64, now time.Time) *Context {
	f.window = f.window[:0]
	f.startSeen = false
	f.endSeen = false
	f.anchor = anchor
	f.tail = anchor
	f.viewport = size
	for _, n := range f.nodes {
		n.Reset()
	}
	ctx := &Context{
		Size:         size,
		Axis:         f.axis,
		ScrollOffset: scrollOffset,
		flow:         f,
		now:          now,
	}
	if anchor != nil {
		ctx.nextCur = anchor
		ctx.prevCur = anchor
	}
	return ctx
}

// acquire 返回条目对应的节点，不存在时创建
// 处于移除流程中的节点重新回到窗口时复活
func (f *Flow) acquire(item Item) *Node {
	n, ok := f.nodes[item.ID()]
	if !ok {
		n = NewNode(item, f.viewport)
		f.nodes[item.ID()] = n
		return n
	}
	if n.Removing() {
		n.Revive()
		f.removing = removeNode(f.removing, n)
	}
	return n
}

// RemoveNonInvalidatedNodes 把本轮布局未触碰的节点转入移除流程
// removeSpec 非 nil 时作为移除过渡（典型配置：渐隐）
func (f *Flow) RemoveNonInvalidatedNodes(removeSpec *SetOptions, now time.Time) {
	for _, n := range f.nodes {
		if n.Invalidated() || n.Removing() {
			continue
		}
		n.Remove(removeSpec, now)
		f.removing = append(f.removing, n)
	}
}

// BuildSpecs 构建当前时刻的布局结果并销毁已完成移除的节点
//
// 返回顺序：窗口内节点按布局顺序在前，移除中的节点按进入移除的顺序在后。
// 每次提交都会调用（包括布局空闲的提交），保证过渡动画持续推进。
func (f *Flow) BuildSpecs(now time.Time) []*Spec {
	specs := make([]*Spec, 0, len(f.window)+len(f.removing))
	for _, n := range f.window {
		specs = append(specs, n.Spec(now))
	}
	kept := f.removing[:0]
	for _, n := range f.removing {
		if n.RemovalDone(now) {
			delete(f.nodes, n.Item().ID())
			continue
		}
		kept = append(kept, n)
		specs = append(specs, n.Spec(now))
	}
	f.removing = kept
	return specs
}

// UpdateAnchor 同步锚点游标
// 窗口归一化提升锚点后调用；EndReached 的起始端游标探测基于锚点，
// 用开窗时记录的旧锚点探测会漏判起始端。
func (f *Flow) UpdateAnchor(anchor Cursor) {
	f.anchor = anchor
}

// EndReached 报告序列的某一端是否已被遍历到
// towardStart=true 询问起始端，false 询问结束端
//
// 起始端除了布局遍历标记外还会探测锚点游标本身：
// 布局函数只在锚点前仍有空隙时才向前遍历，锚点恰好是首条目且
// 偏移为 0 时不会触发遍历，此时通过游标探测补上判定。
func (f *Flow) EndReached(towardStart bool) bool {
	if f.anchor == nil {
		return true
	}
	if towardStart {
		if f.startSeen {
			return true
		}
		return f.anchor.Prev().Item() == nil
	}
	if f.endSeen {
		return true
	}
	// 视口恰好被填满时布局函数不会再前进一步，
	// 这里探测停留处的游标补上判定
	return f.tail != nil && f.tail.Item() == nil
}

// WindowLen 返回本轮窗口内的节点数
// BuildSpecs 返回值的前 WindowLen 项即窗口内的布局结果（按布局顺序）
func (f *Flow) WindowLen() int {
	return len(f.window)
}

// NodeCount 返回当前存活的节点数（含移除中的节点）
func (f *Flow) NodeCount() int {
	return len(f.nodes)
}

func removeNode(list []*Node, target *Node) []*Node {
	for i, n := range list {
		if n == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
