package physics

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func newTestModel() *ScrollModel {
	return NewScrollModel(0.2, 3.0, SpringConfig{DampingRatio: 0.8, Period: 300})
}

// TestScrollModelWheelAccumulation 测试滚轮增量的累加
// 连续的滚轮事件在结算之前累加进有效偏移
func TestScrollModelWheelAccumulation(t *testing.T) {
	m := newTestModel()

	m.ApplyStart(Event{Source: SourceWheel, Delta: 10})
	m.ApplyUpdate(Event{Source: SourceWheel, Delta: 5})
	m.ApplyUpdate(Event{Source: SourceWheel, Delta: 7.5})

	got := m.EffectiveOffset(false, false)
	if math.Abs(got-22.5) > tolerance {
		t.Errorf("Expected effective offset 22.5, got %f", got)
	}
	// 粒子位置不受未结算增量影响
	if m.Position() != 0 {
		t.Errorf("Expected position 0 before integration, got %f", m.Position())
	}
}

// TestScrollModelWheelBoundarySuppression 测试边界处滚轮增量被丢弃
func TestScrollModelWheelBoundarySuppression(t *testing.T) {
	tests := []struct {
		name         string
		delta        float64
		firstReached bool
		lastReached  bool
		expected     float64
	}{
		{name: "起始端丢弃正增量", delta: 50, firstReached: true, expected: 0},
		{name: "起始端保留负增量", delta: -50, firstReached: true, expected: -50},
		{name: "结束端丢弃负增量", delta: -50, lastReached: true, expected: 0},
		{name: "结束端保留正增量", delta: 50, lastReached: true, expected: 50},
		{name: "无边界不丢弃", delta: 50, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			m.ApplyStart(Event{Source: SourceWheel, Delta: tt.delta})
			got := m.EffectiveOffset(tt.firstReached, tt.lastReached)
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

// TestScrollModelWheelSuppressionDiscards 测试丢弃后增量不会复活
func TestScrollModelWheelSuppressionDiscards(t *testing.T) {
	m := newTestModel()
	m.ApplyStart(Event{Source: SourceWheel, Delta: 50})

	if got := m.EffectiveOffset(true, false); got != 0 {
		t.Errorf("Expected 0 at first boundary, got %f", got)
	}
	// 再次读取（已无边界）也不应出现被丢弃的增量
	if got := m.EffectiveOffset(false, false); got != 0 {
		t.Errorf("Expected 0 after discard, got %f", got)
	}
}

// TestScrollModelDragOffset 测试拖拽位移的叠加与结算
func TestScrollModelDragOffset(t *testing.T) {
	m := newTestModel()

	m.ApplyStart(Event{Source: SourceDrag, Position: 100})
	m.ApplyUpdate(Event{Source: SourceDrag, Position: 140})

	if !m.Dragging() {
		t.Error("Expected dragging state after start")
	}
	if got := m.EffectiveOffset(false, false); math.Abs(got-40) > tolerance {
		t.Errorf("Expected effective offset 40 during drag, got %f", got)
	}
	if m.Position() != 0 {
		t.Errorf("Expected position 0 during drag, got %f", m.Position())
	}

	m.ApplyEnd(Event{Source: SourceDrag, Position: 140, Velocity: 500, HasVelocity: true})

	if m.Dragging() {
		t.Error("Expected dragging cleared after end")
	}
	if math.Abs(m.Position()-40) > tolerance {
		t.Errorf("Expected position 40 after end, got %f", m.Position())
	}
	if got := m.EffectiveOffset(false, false); math.Abs(got-40) > tolerance {
		t.Errorf("Expected effective offset 40 after end, got %f", got)
	}
}

// TestScrollModelInertia 测试释放后的惯性滑行与衰减
func TestScrollModelInertia(t *testing.T) {
	m := newTestModel()
	m.ApplyStart(Event{Source: SourceDrag, Position: 0})
	m.ApplyEnd(Event{Source: SourceDrag, Position: 0, Velocity: 500, HasVelocity: true})

	if !m.Moving() {
		t.Error("Expected moving after release with velocity")
	}

	dt := 1.0 / 60
	m.Step(dt)
	first := m.Position()
	if first <= 0 {
		t.Errorf("Expected position to advance, got %f", first)
	}

	m.Step(dt)
	second := m.Position() - first
	if second >= first {
		t.Errorf("Expected decaying steps, first=%f second=%f", first, second)
	}

	// 长时间后速度衰减到静止
	for i := 0; i < 600; i++ {
		m.Step(dt)
	}
	if m.Moving() {
		t.Error("Expected rest after decay")
	}
}

// TestScrollModelIntegrateClampFirst 测试滚轮结算被钳到起始边界
func TestScrollModelIntegrateClampFirst(t *testing.T) {
	m := newTestModel()
	m.ApplyStart(Event{Source: SourceWheel, Delta: 50})

	changed := m.Integrate(true, false, 0)
	if !changed {
		t.Error("Expected effective offset change when clamping")
	}
	if m.Position() != 0 {
		t.Errorf("Expected position exactly 0 at first boundary, got %f", m.Position())
	}
	// 增量已结算
	if got := m.EffectiveOffset(false, false); got != 0 {
		t.Errorf("Expected effective offset 0 after integration, got %f", got)
	}
}

// TestScrollModelIntegrateClampLast 测试滚轮结算被钳到结束边界
func TestScrollModelIntegrateClampLast(t *testing.T) {
	m := newTestModel()
	m.SetPosition(-500)
	m.ApplyStart(Event{Source: SourceWheel, Delta: -100})

	changed := m.Integrate(false, true, -550)
	if !changed {
		t.Error("Expected effective offset change when clamping")
	}
	if math.Abs(m.Position()-(-550)) > tolerance {
		t.Errorf("Expected position clamped to -550, got %f", m.Position())
	}
}

// TestScrollModelIntegrateNoDelta 测试无增量时结算为空操作
func TestScrollModelIntegrateNoDelta(t *testing.T) {
	m := newTestModel()
	m.SetPosition(-120)
	if m.Integrate(false, false, 0) {
		t.Error("Expected no change without pending delta")
	}
	if m.Position() != -120 {
		t.Errorf("Expected position unchanged, got %f", m.Position())
	}
}

// TestScrollModelIntegrateUnclamped 测试无边界时结算直接折算
func TestScrollModelIntegrateUnclamped(t *testing.T) {
	m := newTestModel()
	m.ApplyStart(Event{Source: SourceWheel, Delta: -250})

	// 位置变化但有效偏移不变（增量折进粒子）
	if m.Integrate(false, false, 0) {
		t.Error("Expected effective offset unchanged for unclamped integration")
	}
	if math.Abs(m.Position()-(-250)) > tolerance {
		t.Errorf("Expected position -250, got %f", m.Position())
	}
}

// TestScrollModelRounding 测试位置量化
func TestScrollModelRounding(t *testing.T) {
	m := newTestModel()
	m.SetPosition(10.07)
	if got := m.EffectiveOffset(false, false); math.Abs(got-10.0) > tolerance {
		t.Errorf("Expected rounded offset 10.0, got %f", got)
	}
	// 未量化的位置保持原值
	if math.Abs(m.Position()-10.07) > tolerance {
		t.Errorf("Expected raw position 10.07, got %f", m.Position())
	}

	noRound := NewScrollModel(0, 3.0, SpringConfig{DampingRatio: 0.8, Period: 300})
	noRound.SetPosition(10.07)
	if got := noRound.EffectiveOffset(false, false); math.Abs(got-10.07) > tolerance {
		t.Errorf("Expected unrounded offset 10.07, got %f", got)
	}
}

// TestScrollModelEdgeSpringIdempotent 测试弹簧锚点按值幂等
func TestScrollModelEdgeSpringIdempotent(t *testing.T) {
	m := newTestModel()

	target := 10.0
	m.SetEdgeSpring(&target)
	p1 := m.SpringTarget()
	if p1 == nil || *p1 != 10.0 {
		t.Fatalf("Expected spring target 10.0, got %v", p1)
	}

	// 同值重设不更换内部锚点
	same := 10.0
	m.SetEdgeSpring(&same)
	if m.SpringTarget() != p1 {
		t.Error("Expected same-value reset to be a no-op")
	}

	other := 20.0
	m.SetEdgeSpring(&other)
	if got := m.SpringTarget(); got == nil || *got != 20.0 {
		t.Errorf("Expected spring target 20.0, got %v", got)
	}

	m.SetEdgeSpring(nil)
	if m.SpringTarget() != nil {
		t.Error("Expected spring detached")
	}
}

// TestScrollModelSpringConvergence 测试弹簧把粒子拉向锚点并收敛
func TestScrollModelSpringConvergence(t *testing.T) {
	m := newTestModel()
	target := 100.0
	m.SetEdgeSpring(&target)

	dt := 1.0 / 60
	for i := 0; i < 30; i++ {
		m.Step(dt)
	}
	half := math.Abs(m.Position() - target)
	if half >= 100 {
		t.Errorf("Expected spring to approach target, distance=%f", half)
	}

	for i := 0; i < 90; i++ {
		m.Step(dt)
	}
	if got := math.Abs(m.Position() - target); got > 1.0 {
		t.Errorf("Expected convergence near 100, distance=%f", got)
	}
}

// TestScrollModelStepSkippedWhileDragging 测试拖拽中不推进粒子
func TestScrollModelStepSkippedWhileDragging(t *testing.T) {
	m := newTestModel()
	target := 100.0
	m.SetEdgeSpring(&target)
	m.ApplyStart(Event{Source: SourceDrag, Position: 0})

	m.Step(1.0 / 60)
	if m.Position() != 0 {
		t.Errorf("Expected position frozen during drag, got %f", m.Position())
	}
}
