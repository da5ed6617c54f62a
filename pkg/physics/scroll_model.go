// Package physics 提供滚动偏移的物理模型
//
// 滚动偏移被建模为单自由度的阻尼粒子：
//   - 拖拽释放后按指数衰减的速度惯性滑行
//   - 靠近序列边界时挂接弹簧力，把粒子拉回与边界一致的偏移
//   - 拖拽进行中的位移与未结算的滚轮增量作为待定量叠加在粒子位置上
//
// 位置读取经过量化（舍入到配置粒度的整数倍），避免亚像素抖动
// 引起的重复布局。所有数值必须始终有限，NaN 属于不变量违反。
package physics

import (
	"log"
	"math"

	"github.com/charmbracelet/harmonica"
)

// Source 标识输入事件的来源
type Source int

const (
	// SourceDrag 触摸/鼠标拖拽（提供绝对位置采样）
	SourceDrag Source = iota
	// SourceWheel 滚轮（提供增量采样，滚动中不产生惯性）
	SourceWheel
)

// Event 是归一化后的单轴输入采样
type Event struct {
	// Source 事件来源
	Source Source
	// Position 拖拽事件的绝对位置采样（滚动轴分量）
	Position float64
	// Delta 滚轮事件的增量（已乘滚轮缩放系数）
	Delta float64
	// Velocity 拖拽结束时的释放速度（仅 HasVelocity 为 true 时有效）
	Velocity float64
	// HasVelocity 指示 Velocity 字段是否有效
	HasVelocity bool
}

// SpringConfig 是边界弹簧参数
type SpringConfig struct {
	// DampingRatio 阻尼比（1 为临界阻尼）
	DampingRatio float64
	// Period 无阻尼振荡周期（毫秒）
	Period float64
}

// restVelocity 低于该速度时惯性滑行停止
const restVelocity = 0.05

// ScrollModel 维护滚动偏移的完整物理状态
//
// 有效偏移 = 量化后的粒子位置 + 进行中的拖拽位移 + 未结算的滚轮增量。
// 手势回调只修改待定字段，粒子位置仅由 Step（积分）、ApplyEnd（拖拽结算）、
// Integrate（滚轮结算）和窗口归一化（ShiftPosition）修改。
type ScrollModel struct {
	position float64
	velocity float64

	drag     float64
	rounding float64

	springCfg    SpringConfig
	springTarget *float64
	spring       harmonica.Spring
	springDT     float64

	dragging    bool
	startSample float64
	moveOffset  float64

	scrollDelta float64
}

// NewScrollModel 创建滚动物理模型
//
// 参数：
//   - rounding: 位置量化粒度（<= 0 表示不量化）
//   - drag: 惯性阻力系数（每秒，速度按 exp(-drag·dt) 衰减）
//   - spring: 边界弹簧参数
func NewScrollModel(rounding, drag float64, spring SpringConfig) *ScrollModel {
	return &ScrollModel{
		drag:      drag,
		rounding:  rounding,
		springCfg: spring,
	}
}

// ApplyStart 处理输入开始事件
// 拖拽：清零速度并记录起始采样；滚轮：累加增量并清零速度
func (m *ScrollModel) ApplyStart(e Event) {
	switch e.Source {
	case SourceDrag:
		m.velocity = 0
		m.startSample = e.Position
		m.moveOffset = 0
		m.dragging = true
	case SourceWheel:
		m.scrollDelta += e.Delta
		m.velocity = 0
	}
}

// ApplyUpdate 处理输入更新事件
// 拖拽：moveOffset = 当前采样 − 起始采样，速度保持 0；
// 滚轮：继续累加增量并强制速度为 0（滚轮滚动中不产生惯性）
func (m *ScrollModel) ApplyUpdate(e Event) {
	switch e.Source {
	case SourceDrag:
		if !m.dragging {
			m.ApplyStart(e)
			return
		}
		m.moveOffset = e.Position - m.startSample
		m.velocity = 0
	case SourceWheel:
		m.scrollDelta += e.Delta
		m.velocity = 0
	}
}

// ApplyEnd 处理输入结束事件
// 拖拽：把 moveOffset 结算进粒子位置，设置释放速度（若提供）以便
// 通过阻力衰减惯性滑行，并清除 moveOffset；滚轮：与更新相同
func (m *ScrollModel) ApplyEnd(e Event) {
	switch e.Source {
	case SourceDrag:
		if !m.dragging {
			return
		}
		m.moveOffset = e.Position - m.startSample
		m.position += m.moveOffset
		m.moveOffset = 0
		m.dragging = false
		if e.HasVelocity {
			m.velocity = e.Velocity
		}
		assertFinite(m.position, "position")
	case SourceWheel:
		m.scrollDelta += e.Delta
		m.velocity = 0
	}
}

// Dragging 返回是否有拖拽进行中
func (m *ScrollModel) Dragging() bool {
	return m.dragging
}

// Position 返回未量化的粒子位置
func (m *ScrollModel) Position() float64 {
	return m.position
}

// SetPosition 直接设置粒子位置（恢复持久化的滚动状态时使用）
func (m *ScrollModel) SetPosition(v float64) {
	m.position = v
	m.velocity = 0
}

// ShiftPosition 平移粒子位置
// 窗口归一化在锚点交换时调用：把新旧锚点的前缘差从粒子位置中加减，
// 使世界坐标以新锚点为基准
func (m *ScrollModel) ShiftPosition(delta float64) {
	m.position += delta
	assertFinite(m.position, "position")
}

// roundedPosition 返回量化后的粒子位置
func (m *ScrollModel) roundedPosition() float64 {
	if m.rounding <= 0 {
		return m.position
	}
	return math.Round(m.position/m.rounding) * m.rounding
}

// EffectiveOffset 返回本轮布局使用的有效滚动偏移
//
// 有效偏移 = 量化位置 + 拖拽位移 + 滚轮增量。
// 在叠加之前，会把"继续推向已到达边界"的滚轮增量清零：
// 起始端已到达时丢弃正增量，结束端已到达时丢弃负增量。
// 注意清零只针对增量本身，叠加结果不做钳制——越界的残余值
// 会在 Integrate 结算时被钳回（至多引起一帧的视觉偏差）。
func (m *ScrollModel) EffectiveOffset(firstReached, lastReached bool) float64 {
	if m.scrollDelta != 0 {
		if (firstReached && m.scrollDelta > 0) || (lastReached && m.scrollDelta < 0) {
			m.scrollDelta = 0
		}
	}
	return m.roundedPosition() + m.moveOffset + m.scrollDelta
}

// Integrate 把未结算的滚轮增量折算进粒子位置
//
// 结算结果被钳制到已到达的边界内：起始端到达时结果恰为 0，
// 结束端到达时结果不小于 lastScrollOffset（只能靠近边界，不能越过）。
// 返回有效偏移值是否因此发生变化——变化时编排器需要重新布局。
func (m *ScrollModel) Integrate(firstReached, lastReached bool, lastScrollOffset float64) bool {
	if m.scrollDelta == 0 {
		return false
	}
	oldEffective := m.roundedPosition() + m.moveOffset + m.scrollDelta

	newPos := m.position + m.scrollDelta
	if firstReached {
		newPos = 0
	} else if lastReached && newPos < lastScrollOffset {
		newPos = lastScrollOffset
	}
	m.position = newPos
	m.scrollDelta = 0
	assertFinite(m.position, "position")

	newEffective := m.roundedPosition() + m.moveOffset
	return newEffective != oldEffective
}

// SetEdgeSpring 挂接/更新/脱开边界弹簧
// target 为 nil 表示脱开（不施加弹簧力）
// 与当前锚点值相同（按值比较）时为幂等空操作
func (m *ScrollModel) SetEdgeSpring(target *float64) {
	if target == nil {
		m.springTarget = nil
		return
	}
	if m.springTarget != nil && *m.springTarget == *target {
		return
	}
	v := *target
	m.springTarget = &v
}

// SpringTarget 返回当前弹簧锚点（nil 表示脱开）
func (m *ScrollModel) SpringTarget() *float64 {
	return m.springTarget
}

// Step 推进粒子一个时间步
//
// 弹簧挂接时由弹簧驱动位置与速度（阻尼由弹簧参数决定）；
// 否则速度按阻力指数衰减并积分位置，低于静止阈值时归零。
// 拖拽进行中不推进（速度被手势回调钳在 0）。
func (m *ScrollModel) Step(dt float64) {
	if dt <= 0 || m.dragging {
		return
	}
	if m.springTarget != nil {
		if m.springDT != dt {
			omega := 2 * math.Pi
			if m.springCfg.Period > 0 {
				omega = 2 * math.Pi / (m.springCfg.Period / 1000)
			}
			m.spring = harmonica.NewSpring(dt, omega, m.springCfg.DampingRatio)
			m.springDT = dt
		}
		m.position, m.velocity = m.spring.Update(m.position, m.velocity, *m.springTarget)
	} else if m.velocity != 0 {
		m.velocity *= math.Exp(-m.drag * dt)
		m.position += m.velocity * dt
		if math.Abs(m.velocity) < restVelocity {
			m.velocity = 0
		}
	}
	assertFinite(m.position, "position")
	assertFinite(m.velocity, "velocity")
}

// Moving 返回粒子是否仍在运动（速度非零或弹簧未收敛）
func (m *ScrollModel) Moving() bool {
	if m.velocity != 0 {
		return true
	}
	if m.springTarget != nil {
		return math.Abs(m.position-*m.springTarget) > restVelocity
	}
	return false
}

// assertFinite 是调试期的数值不变量检查
// 正确运行中不应触发；出现 NaN/Inf 说明上游计算被污染
func assertFinite(v float64, what string) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		log.Printf("[Physics] 数值不变量违反: %s=%v", what, v)
	}
}
