// Package gesture 把原始指针/滚轮输入翻译为归一化的滚动手势事件
//
// 输入通过 PointerInput 接口读取，默认实现基于 Ebitengine
// （优先触摸，其次鼠标），测试时可注入 mock 实现。
package gesture

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/scrollkit/pkg/layout"
	"github.com/decker502/scrollkit/pkg/physics"
)

// PointerInput 是指针输入源接口
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	// PointerPosition 当前指针位置（触摸或鼠标）
	PointerPosition() (int, int)
	// IsPointerPressed 是否有指针按下（触摸或鼠标左键）
	IsPointerPressed() bool
	// Wheel 本帧的滚轮增量
	Wheel() (xoff, yoff float64)
}

// ebitenPointerInput Ebitengine 默认实现
// 优先检测触摸（移动设备），没有触摸时回退到鼠标
type ebitenPointerInput struct{}

func (ebitenPointerInput) PointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

func (ebitenPointerInput) IsPointerPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenPointerInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

// Phase 标识手势事件所处的阶段
type Phase int

const (
	// PhaseStart 手势开始
	PhaseStart Phase = iota
	// PhaseUpdate 手势进行中
	PhaseUpdate
	// PhaseEnd 手势结束
	PhaseEnd
)

// Event 是一条归一化的手势事件
type Event struct {
	Phase  Phase
	Sample physics.Event
}

// 速度估计的指数平滑系数（新样本权重）
const velocitySmoothing = 0.2

// 最后一次滚轮增量之后经过该时长视为滚轮手势结束（秒）
const wheelEndDelay = 0.2

// Recognizer 把每帧的指针状态翻译为拖拽/滚轮手势事件
//
// 拖拽：指针按下为开始，按住移动为更新，抬起为结束；
// 结束事件携带按指数平滑估计的释放速度（用于惯性滑行）。
// 滚轮：增量乘以缩放系数后作为滚轮事件，静默一段时间后补发结束事件。
type Recognizer struct {
	input      PointerInput
	axis       layout.Axis
	wheelScale float64

	dragging bool
	lastPos  float64
	velocity float64

	wheelActive bool
	wheelQuiet  float64
}

// NewRecognizer 创建手势识别器（使用 Ebitengine 输入源）
func NewRecognizer(axis layout.Axis, wheelScale float64) *Recognizer {
	return NewRecognizerWithInput(axis, wheelScale, ebitenPointerInput{})
}

// NewRecognizerWithInput 创建带自定义输入源的手势识别器（用于测试）
func NewRecognizerWithInput(axis layout.Axis, wheelScale float64, input PointerInput) *Recognizer {
	return &Recognizer{
		input:      input,
		axis:       axis,
		wheelScale: wheelScale,
	}
}

// Sample 读取当前帧的输入状态并产出手势事件
// 每个外部帧 tick 调用一次；dt 为距上一帧的时间（秒），用于速度估计
func (r *Recognizer) Sample(dt float64) []Event {
	var events []Event

	x, y := r.input.PointerPosition()
	pos := float64(x)
	if r.axis == layout.AxisY {
		pos = float64(y)
	}
	pressed := r.input.IsPointerPressed()

	switch {
	case pressed && !r.dragging:
		r.dragging = true
		r.lastPos = pos
		r.velocity = 0
		events = append(events, Event{
			Phase:  PhaseStart,
			Sample: physics.Event{Source: physics.SourceDrag, Position: pos},
		})
	case pressed && r.dragging:
		if dt > 0 {
			instant := (pos - r.lastPos) / dt
			r.velocity += velocitySmoothing * (instant - r.velocity)
		}
		r.lastPos = pos
		events = append(events, Event{
			Phase:  PhaseUpdate,
			Sample: physics.Event{Source: physics.SourceDrag, Position: pos},
		})
	case !pressed && r.dragging:
		r.dragging = false
		events = append(events, Event{
			Phase: PhaseEnd,
			Sample: physics.Event{
				Source:      physics.SourceDrag,
				Position:    r.lastPos,
				Velocity:    r.velocity,
				HasVelocity: true,
			},
		})
	}

	wx, wy := r.input.Wheel()
	wheel := wx
	if r.axis == layout.AxisY {
		wheel = wy
	}
	if wheel != 0 {
		delta := wheel * r.wheelScale
		phase := PhaseUpdate
		if !r.wheelActive {
			r.wheelActive = true
			phase = PhaseStart
		}
		r.wheelQuiet = 0
		events = append(events, Event{
			Phase:  phase,
			Sample: physics.Event{Source: physics.SourceWheel, Delta: delta},
		})
	} else if r.wheelActive {
		r.wheelQuiet += dt
		if r.wheelQuiet >= wheelEndDelay {
			r.wheelActive = false
			events = append(events, Event{
				Phase:  PhaseEnd,
				Sample: physics.Event{Source: physics.SourceWheel},
			})
		}
	}

	return events
}
