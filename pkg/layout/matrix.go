package layout

import "math"

// Matrix 是列主序的 4×4 变换矩阵
// 与 CSS matrix3d 的内存布局一致：平移分量位于索引 12/13/14
// 滚动轴上的位移可直接通过 m[12+axis] 读取
type Matrix [16]float64

// Identity 返回单位矩阵
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate 返回纯平移矩阵
func Translate(x, y, z float64) Matrix {
	m := Identity()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// Parts 是分解形式的二维变换参数
// 矩阵由 Build 按 平移 × 旋转 × 斜切 × 缩放 的顺序合成
type Parts struct {
	// Translate 平移 [x, y, z]
	Translate [3]float64
	// Rotate 绕 Z 轴的旋转角（弧度）
	Rotate float64
	// Scale 缩放 [x, y]
	Scale [2]float64
	// Skew 斜切角 [x, y]（弧度）
	Skew [2]float64
}

// IdentityParts 返回不产生任何变换的参数
func IdentityParts() Parts {
	return Parts{Scale: [2]float64{1, 1}}
}

// Build 从分解参数合成变换矩阵
//
// 二维仿射部分的展开形式（kx/ky 为旋转与斜切的合成角）：
//
//	kx = rotate + skewX
//	ky = rotate + skewY
//	a = cos(kx)·sx   b = sin(kx)·sx
//	c = -sin(ky)·sy  d = cos(ky)·sy
//
// 旋转与斜切都为 0 时退化为纯缩放+平移，避免三角函数调用。
func Build(p Parts) Matrix {
	m := Identity()
	if p.Rotate == 0 && p.Skew[0] == 0 && p.Skew[1] == 0 {
		m[0] = p.Scale[0]
		m[5] = p.Scale[1]
	} else {
		kx := p.Rotate + p.Skew[0]
		ky := p.Rotate + p.Skew[1]
		m[0] = math.Cos(kx) * p.Scale[0]
		m[1] = math.Sin(kx) * p.Scale[0]
		m[4] = -math.Sin(ky) * p.Scale[1]
		m[5] = math.Cos(ky) * p.Scale[1]
	}
	m[12] = p.Translate[0]
	m[13] = p.Translate[1]
	m[14] = p.Translate[2]
	return m
}
