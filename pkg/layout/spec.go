package layout

// Spec 是单个条目在当前帧的布局结果
// 由 Node 根据已提交属性（或进行中的过渡插值）生成，每帧重建，不跨帧复用
type Spec struct {
	// Item 是该布局结果所属的条目（反向引用）
	Item Item

	// Transform 条目的变换矩阵，滚动轴位移位于 Transform[12+axis]
	Transform Matrix

	// Size 条目尺寸 [宽, 高]
	Size [2]float64

	// Opacity 不透明度 0.0 ~ 1.0
	Opacity float64

	// Origin 变换原点（相对条目尺寸的比例坐标）
	Origin [2]float64

	// Align 对齐点（相对容器尺寸的比例坐标）
	Align [2]float64

	// Hide 为 true 时条目不渲染（但仍占据布局位置）
	Hide bool

	// TrueSizeRequested 为 true 表示条目的真实尺寸尚未解析
	// Size 中存放的是估计值，窗口归一化和边界判定必须跳过该条目
	TrueSizeRequested bool
}

// OffsetAlong 返回条目在滚动轴上的前缘位置
func (s *Spec) OffsetAlong(axis Axis) float64 {
	return s.Transform[12+int(axis)]
}

// SizeAlong 返回条目在滚动轴上的尺寸
func (s *Spec) SizeAlong(axis Axis) float64 {
	return s.Size[int(axis)]
}

// TrailingEdge 返回条目在滚动轴上的后缘位置（前缘 + 尺寸）
func (s *Spec) TrailingEdge(axis Axis) float64 {
	return s.OffsetAlong(axis) + s.SizeAlong(axis)
}

// SpecByItem 在布局结果列表中按条目身份查找 Spec
// 线性扫描：窗口通常只有几十个条目，无需建立索引
// 未找到时返回 nil
func SpecByItem(specs []*Spec, item Item) *Spec {
	if item == nil {
		return nil
	}
	for _, s := range specs {
		if s.Item == item {
			return s
		}
	}
	return nil
}
