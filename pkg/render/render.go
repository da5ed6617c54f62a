// Package render 把提交结果绘制到 Ebitengine 图像
//
// 本包只负责解析每个 Spec 的变换、对齐与不透明度并发出绘制调用；
// 条目内容的像素由条目自己提供（Drawable 接口）。
package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/scrollkit/pkg/layout"
	"github.com/decker502/scrollkit/pkg/scroller"
)

// Drawable 是可渲染条目的扩展接口
// 不实现该接口的条目会被跳过（布局仍然生效）
type Drawable interface {
	layout.Item
	// Image 返回条目的内容图像
	Image() *ebiten.Image
}

// Renderer 把提交结果绘制到目标图像
// 嵌入容器模式下持有一张离屏容器图像（裁剪到视口）
type Renderer struct {
	container *ebiten.Image
}

// NewRenderer 创建渲染器
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw 绘制一次提交结果
// 按布局结果顺序绘制（画家算法），Hide 或完全透明的条目跳过
func (r *Renderer) Draw(dst *ebiten.Image, res *scroller.CommitResult) {
	target := dst
	if res.Embedded {
		target = r.containerImage(res.Size)
		target.Clear()
	}

	for _, spec := range res.Specs {
		if spec.Hide || spec.Opacity <= 0 {
			continue
		}
		drawable, ok := spec.Item.(Drawable)
		if !ok {
			continue
		}
		img := drawable.Image()
		if img == nil {
			continue
		}
		drawSpec(target, img, spec, res.Size)
	}

	if res.Embedded {
		op := &ebiten.DrawImageOptions{}
		applyAffine(&op.GeoM, res.Transform)
		op.ColorScale.ScaleAlpha(float32(res.Opacity))
		dst.DrawImage(target, op)
	}
}

// drawSpec 绘制单个条目
//
// 变换组合顺序：
//  1. 把内容图像缩放到 Spec 尺寸
//  2. 按 Origin 平移变换原点（相对条目尺寸的比例坐标）
//  3. 应用 Spec 矩阵的二维仿射部分（旋转/缩放/斜切）
//  4. 平移到最终位置：矩阵平移分量 + Align 对齐点（相对容器尺寸）
func drawSpec(dst *ebiten.Image, img *ebiten.Image, spec *layout.Spec, containerSize [2]float64) {
	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	if w == 0 || h == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(spec.Size[0]/w, spec.Size[1]/h)
	op.GeoM.Translate(-spec.Origin[0]*spec.Size[0], -spec.Origin[1]*spec.Size[1])

	var affine ebiten.GeoM
	applyAffine(&affine, spec.Transform)
	op.GeoM.Concat(affine)

	op.GeoM.Translate(
		spec.Transform[12]+spec.Align[0]*containerSize[0],
		spec.Transform[13]+spec.Align[1]*containerSize[1],
	)

	op.ColorScale.ScaleAlpha(float32(spec.Opacity))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// applyAffine 把 4×4 矩阵的二维仿射部分写入 GeoM（不含平移）
func applyAffine(g *ebiten.GeoM, m layout.Matrix) {
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[4])
	g.SetElement(1, 1, m[5])
}

// containerImage 返回与视口尺寸匹配的容器图像（尺寸变化时重建）
func (r *Renderer) containerImage(size [2]float64) *ebiten.Image {
	w, h := int(size[0]), int(size[1])
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if r.container != nil {
		b := r.container.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return r.container
		}
		r.container.Deallocate()
	}
	r.container = ebiten.NewImage(w, h)
	return r.container
}
