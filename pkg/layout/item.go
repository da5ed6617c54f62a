// Package layout 提供滚动布局引擎的核心数据结构
//
// 本包定义布局条目（Item）、单条目布局结果（Spec）、4×4 变换矩阵（Matrix）、
// 带过渡动画的布局节点（Node），以及管理节点生命周期的流式布局控制器（Flow）。
// 布局函数（如 layouts.List）通过 Context 遍历序列并为每个条目设置目标属性，
// Node 负责把声明式的目标属性集转换为随时间平滑变化的 Spec。
package layout

// Axis 表示滚动方向（单轴）
type Axis int

const (
	// AxisX 水平滚动
	AxisX Axis = 0
	// AxisY 垂直滚动
	AxisY Axis = 1
)

// Other 返回与滚动方向垂直的轴
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Item 是可被布局的条目
// 条目本身由外部序列拥有，布局引擎只持有引用
// ID 在同一序列内必须唯一且稳定（用于节点生命周期管理）
type Item interface {
	ID() string
}

// Sizer 是条目的可选扩展接口：条目已知自身在某个轴上的尺寸时返回 ok=true
// 返回 ok=false 表示尺寸尚未解析（例如图片未加载完成），
// 布局会使用估计尺寸并在 Spec 上标记 TrueSizeRequested，
// 该条目在本轮窗口归一化和边界判定中会被排除。
type Sizer interface {
	ItemSize(axis Axis) (float64, bool)
}

// Cursor 是指向外部双向序列的游标
// Item 返回 nil 表示越界（序列两端以 nil 结尾）
// Next/Prev 返回新的游标，原游标不被修改
type Cursor interface {
	Item() Item
	Next() Cursor
	Prev() Cursor
}
