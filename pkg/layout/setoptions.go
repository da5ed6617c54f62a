package layout

import (
	"time"

	"github.com/decker502/scrollkit/pkg/utils"
)

// Transition 描述一次属性过渡
type Transition struct {
	// Duration 过渡时长，<= 0 表示立即生效（不产生动画）
	Duration time.Duration

	// Easing 缓动函数，nil 时使用 utils.EaseInOutQuad
	Easing func(float64) float64
}

// SetOptions 是声明式的目标属性集
// nil 字段表示"保持当前值"，非 nil 字段会成为过渡的目标值
// 所有可动画通道（尺寸、原点、对齐、缩放、斜切、平移、旋转、不透明度）
// 在过渡期间按分量线性插值。
type SetOptions struct {
	Size      *[2]float64
	Origin    *[2]float64
	Align     *[2]float64
	Scale     *[2]float64
	Skew      *[2]float64
	Translate *[3]float64
	Rotate    *float64
	Opacity   *float64

	// Hide 控制条目是否渲染（非动画通道，立即生效）
	Hide *bool

	// TrueSizeRequested 标记条目尺寸尚未解析（非动画通道，立即生效）
	TrueSizeRequested *bool

	// Transition 非 nil 且 Duration > 0 时启动/重定向过渡动画
	Transition *Transition
}

// channels 是全部可动画属性通道的展开形式
// 过渡插值在该结构上按分量进行，矩阵在读取 Spec 时由插值结果合成
type channels struct {
	size      [2]float64
	origin    [2]float64
	align     [2]float64
	scale     [2]float64
	skew      [2]float64
	translate [3]float64
	rotate    float64
	opacity   float64
}

// defaultChannels 返回通道的初始值（缩放 1、不透明度 1，其余为 0）
func defaultChannels(viewport [2]float64) channels {
	return channels{
		size:    viewport,
		scale:   [2]float64{1, 1},
		opacity: 1,
	}
}

// apply 把目标属性集叠加到通道上，nil 字段保持原值
func (c channels) apply(set SetOptions) channels {
	if set.Size != nil {
		c.size = *set.Size
	}
	if set.Origin != nil {
		c.origin = *set.Origin
	}
	if set.Align != nil {
		c.align = *set.Align
	}
	if set.Scale != nil {
		c.scale = *set.Scale
	}
	if set.Skew != nil {
		c.skew = *set.Skew
	}
	if set.Translate != nil {
		c.translate = *set.Translate
	}
	if set.Rotate != nil {
		c.rotate = *set.Rotate
	}
	if set.Opacity != nil {
		c.opacity = *set.Opacity
	}
	return c
}

// lerp 在两组通道之间按 t 插值（t=0 返回 c，t=1 返回 to）
func (c channels) lerp(to channels, t float64) channels {
	var out channels
	for i := 0; i < 2; i++ {
		out.size[i] = utils.Lerp(c.size[i], to.size[i], t)
		out.origin[i] = utils.Lerp(c.origin[i], to.origin[i], t)
		out.align[i] = utils.Lerp(c.align[i], to.align[i], t)
		out.scale[i] = utils.Lerp(c.scale[i], to.scale[i], t)
		out.skew[i] = utils.Lerp(c.skew[i], to.skew[i], t)
	}
	for i := 0; i < 3; i++ {
		out.translate[i] = utils.Lerp(c.translate[i], to.translate[i], t)
	}
	out.rotate = utils.Lerp(c.rotate, to.rotate, t)
	out.opacity = utils.Lerp(c.opacity, to.opacity, t)
	return out
}

// parts 把通道转换为矩阵合成参数
func (c channels) parts() Parts {
	return Parts{
		Translate: c.translate,
		Rotate:    c.rotate,
		Scale:     c.scale,
		Skew:      c.skew,
	}
}
