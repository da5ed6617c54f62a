// scrolldemo 是滚动引擎的可运行演示
//
// 展示一个带惯性滑行与边界弹簧的垂直列表：拖拽或滚轮滚动，
// 滚动位置通过 gdata 跨会话保存。
package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/scrollkit/pkg/config"
	"github.com/decker502/scrollkit/pkg/gesture"
	"github.com/decker502/scrollkit/pkg/layout"
	"github.com/decker502/scrollkit/pkg/layouts"
	"github.com/decker502/scrollkit/pkg/persist"
	"github.com/decker502/scrollkit/pkg/render"
	"github.com/decker502/scrollkit/pkg/scroller"
	"github.com/decker502/scrollkit/pkg/sequence"
)

const (
	screenWidth  = 480
	screenHeight = 640
	itemCount    = 60
	listID       = "demo"
)

// listItem 是演示用的列表条目：一块纯色长条
type listItem struct {
	id   string
	img  *ebiten.Image
	size float64
}

func (it *listItem) ID() string { return it.id }

func (it *listItem) ItemSize(axis layout.Axis) (float64, bool) { return it.size, true }

func (it *listItem) Image() *ebiten.Image { return it.img }

// Game 实现 ebiten.Game 接口
type Game struct {
	ctrl     *scroller.Controller
	rec      *gesture.Recognizer
	renderer *render.Renderer
	states   *persist.StateManager

	tick int
}

// Update 每 tick 调用：采样手势、推进物理
func (g *Game) Update() error {
	const dt = 1.0 / 60

	for _, ev := range g.rec.Sample(dt) {
		switch ev.Phase {
		case gesture.PhaseStart:
			g.ctrl.ApplyStart(ev.Sample)
		case gesture.PhaseUpdate:
			g.ctrl.ApplyUpdate(ev.Sample)
		case gesture.PhaseEnd:
			g.ctrl.ApplyEnd(ev.Sample)
		}
	}
	g.ctrl.Step(dt)

	// 每两秒保存一次滚动状态（滚动停止时）
	g.tick++
	if g.tick%120 == 0 && !g.ctrl.Moving() {
		state := persist.ScrollState{Offset: g.ctrl.ScrollOffset()}
		if anchor := g.ctrl.AnchorItem(); anchor != nil {
			state.AnchorID = anchor.ID()
		}
		if err := g.states.Save(listID, state); err != nil {
			log.Printf("[Demo] 保存滚动状态失败: %v", err)
		}
	}
	return nil
}

// Draw 每帧调用：提交布局并绘制
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 32, A: 255})
	res := g.ctrl.Commit([2]float64{screenWidth, screenHeight}, time.Now())
	g.renderer.Draw(screen, res)
}

// Layout 返回逻辑屏幕尺寸
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// buildItems 生成演示条目（高度交替、色相渐变的长条）
func buildItems() []*listItem {
	items := make([]*listItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		img := ebiten.NewImage(1, 1)
		img.Fill(color.RGBA{
			R: uint8(60 + (i*13)%160),
			G: uint8(90 + (i*29)%120),
			B: uint8(140 + (i*7)%100),
			A: 255,
		})
		size := 72.0
		if i%3 == 1 {
			size = 104
		}
		items = append(items, &listItem{
			id:   fmt.Sprintf("item-%d", i),
			img:  img,
			size: size,
		})
	}
	return items
}

func main() {
	items := buildItems()
	seq := sequence.NewSlice()
	for _, it := range items {
		seq.Append(it)
	}

	opts := config.Default()
	opts.WheelScale = 24
	opts.RemoveDurationMs = 200

	ctrl := scroller.New(seq.Cursor(0), layouts.List(layouts.ListOptions{Spacing: 8}), opts)

	// 打开跨平台存储；失败时降级为不持久化
	var states *persist.StateManager
	if err := persist.EnsureStorageDir(); err != nil {
		log.Printf("[Demo] 存储目录不可用: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: "scrolldemo"})
	if err != nil {
		log.Printf("[Demo] 存储不可用，滚动状态不持久化: %v", err)
		states = persist.NewStateManager(nil)
	} else {
		states = persist.NewStateManager(manager)
	}

	// 恢复上次的滚动位置
	if state, err := states.Load(listID); err != nil {
		log.Printf("[Demo] 加载滚动状态失败: %v", err)
	} else if state != nil {
		for i, it := range items {
			if it.ID() == state.AnchorID {
				ctrl.SetAnchor(seq.Cursor(i), state.Offset)
				break
			}
		}
	}

	game := &Game{
		ctrl:     ctrl,
		rec:      gesture.NewRecognizer(ctrl.Axis(), opts.WheelScale),
		renderer: render.NewRenderer(),
		states:   states,
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("scrollkit demo")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
