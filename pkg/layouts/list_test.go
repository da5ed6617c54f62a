package layouts

import (
	"testing"
	"time"

	"github.com/decker502/scrollkit/pkg/layout"
	"github.com/decker502/scrollkit/pkg/sequence"
)

// sizedItem 自报尺寸的测试条目
type sizedItem struct {
	id       string
	size     float64
	resolved bool
}

func (s *sizedItem) ID() string {
	return s.id
}

func (s *sizedItem) ItemSize(axis layout.Axis) (float64, bool) {
	return s.size, s.resolved
}

func makeSequence(n int, size float64) *sequence.Slice {
	seq := sequence.NewSlice()
	for i := 0; i < n; i++ {
		seq.Append(&sizedItem{id: string(rune('a' + i)), size: size, resolved: true})
	}
	return seq
}

// runList 执行一轮列表布局并返回布局结果
func runList(opts ListOptions, seq *sequence.Slice, anchorIndex int, size [2]float64, offset float64) ([]*layout.Spec, *layout.Flow) {
	f := layout.NewFlow(layout.AxisY)
	now := time.Now()
	ctx := f.PrepareForLayout(seq.Cursor(anchorIndex), size, offset, now)
	List(opts)(ctx)
	f.RemoveNonInvalidatedNodes(nil, now)
	return f.BuildSpecs(now), f
}

// TestListForwardFill 测试从锚点向后铺满视口
func TestListForwardFill(t *testing.T) {
	seq := makeSequence(10, 100)
	specs, _ := runList(ListOptions{}, seq, 0, [2]float64{100, 150}, 0)

	if len(specs) != 2 {
		t.Fatalf("Expected 2 items in window, got %d", len(specs))
	}
	if got := specs[0].OffsetAlong(layout.AxisY); got != 0 {
		t.Errorf("Expected first item at 0, got %f", got)
	}
	if got := specs[1].OffsetAlong(layout.AxisY); got != 100 {
		t.Errorf("Expected second item at 100, got %f", got)
	}
	// 交叉轴尺寸等于视口宽度
	if got := specs[0].Size[0]; got != 100 {
		t.Errorf("Expected cross-axis size 100, got %f", got)
	}
}

// TestListFixedItemSize 测试固定条目尺寸覆盖自报尺寸
func TestListFixedItemSize(t *testing.T) {
	seq := makeSequence(10, 100)
	specs, _ := runList(ListOptions{ItemSize: 40}, seq, 0, [2]float64{100, 150}, 0)

	if len(specs) != 4 {
		t.Fatalf("Expected 4 items in window, got %d", len(specs))
	}
	for i, spec := range specs {
		if got := spec.SizeAlong(layout.AxisY); got != 40 {
			t.Errorf("specs[%d]: expected size 40, got %f", i, got)
		}
		if got := spec.OffsetAlong(layout.AxisY); got != float64(i)*40 {
			t.Errorf("specs[%d]: expected offset %f, got %f", i, float64(i)*40, got)
		}
	}
}

// TestListSpacing 测试条目间距
func TestListSpacing(t *testing.T) {
	seq := makeSequence(10, 100)
	specs, _ := runList(ListOptions{Spacing: 10}, seq, 0, [2]float64{100, 250}, 0)

	if len(specs) != 3 {
		t.Fatalf("Expected 3 items in window, got %d", len(specs))
	}
	expected := []float64{0, 110, 220}
	for i, spec := range specs {
		if got := spec.OffsetAlong(layout.AxisY); got != expected[i] {
			t.Errorf("specs[%d]: expected offset %f, got %f", i, expected[i], got)
		}
	}
}

// TestListBackwardFill 测试锚点之前空隙的向前回填
func TestListBackwardFill(t *testing.T) {
	seq := makeSequence(10, 100)
	// 锚点在第三个条目，偏移 30：前面有空隙需要回填
	specs, _ := runList(ListOptions{}, seq, 2, [2]float64{100, 150}, 30)

	if len(specs) != 3 {
		t.Fatalf("Expected 3 items in window, got %d", len(specs))
	}
	// 回填的条目在窗口头部，位于锚点之前
	if specs[0].Item.ID() != "b" {
		t.Errorf("Expected backfilled item b first, got %s", specs[0].Item.ID())
	}
	if got := specs[0].OffsetAlong(layout.AxisY); got != -70 {
		t.Errorf("Expected backfilled item at -70, got %f", got)
	}
	if got := specs[1].OffsetAlong(layout.AxisY); got != 30 {
		t.Errorf("Expected anchor item at 30, got %f", got)
	}
}

// TestListNegativeOffset 测试负偏移时不向前回填
func TestListNegativeOffset(t *testing.T) {
	seq := makeSequence(10, 100)
	specs, _ := runList(ListOptions{}, seq, 0, [2]float64{100, 150}, -120)

	if len(specs) != 3 {
		t.Fatalf("Expected 3 items in window, got %d", len(specs))
	}
	expected := []float64{-120, -20, 80}
	for i, spec := range specs {
		if got := spec.OffsetAlong(layout.AxisY); got != expected[i] {
			t.Errorf("specs[%d]: expected offset %f, got %f", i, expected[i], got)
		}
	}
}

// TestListTrueSizeRequested 测试未解析尺寸的条目使用估计值并被标记
func TestListTrueSizeRequested(t *testing.T) {
	seq := sequence.NewSlice(
		&sizedItem{id: "a", size: 100, resolved: true},
		&sizedItem{id: "b", resolved: false},
		&sizedItem{id: "c", size: 100, resolved: true},
	)
	specs, _ := runList(ListOptions{EstimatedSize: 80}, seq, 0, [2]float64{100, 300}, 0)

	if len(specs) != 3 {
		t.Fatalf("Expected 3 items in window, got %d", len(specs))
	}
	if specs[0].TrueSizeRequested {
		t.Error("Expected resolved item a not flagged")
	}
	if !specs[1].TrueSizeRequested {
		t.Error("Expected unresolved item b flagged")
	}
	if got := specs[1].SizeAlong(layout.AxisY); got != 80 {
		t.Errorf("Expected estimated size 80, got %f", got)
	}
	// 后续条目按估计尺寸排列
	if got := specs[2].OffsetAlong(layout.AxisY); got != 180 {
		t.Errorf("Expected item c at 180, got %f", got)
	}
}

// TestListHorizontalAxis 测试横向滚动轴
func TestListHorizontalAxis(t *testing.T) {
	seq := makeSequence(10, 100)
	f := layout.NewFlow(layout.AxisX)
	now := time.Now()
	ctx := f.PrepareForLayout(seq.Cursor(0), [2]float64{150, 100}, 0, now)
	List(ListOptions{})(ctx)
	specs := f.BuildSpecs(now)

	if len(specs) != 2 {
		t.Fatalf("Expected 2 items in window, got %d", len(specs))
	}
	if got := specs[1].OffsetAlong(layout.AxisX); got != 100 {
		t.Errorf("Expected second item at x=100, got %f", got)
	}
	// 交叉轴（纵向）尺寸等于视口高度
	if got := specs[1].Size[1]; got != 100 {
		t.Errorf("Expected cross-axis size 100, got %f", got)
	}
}
