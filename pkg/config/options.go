// Package config 提供滚动引擎的配置
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/scrollkit/pkg/layout"
	"github.com/decker502/scrollkit/pkg/physics"
	"github.com/decker502/scrollkit/pkg/utils"
)

// 滚动方向的配置取值
const (
	DirectionVertical   = "vertical"
	DirectionHorizontal = "horizontal"
)

// SpringOptions 是边界弹簧配置
type SpringOptions struct {
	// DampingRatio 阻尼比（1 为临界阻尼）
	DampingRatio float64 `yaml:"dampingRatio"`
	// Period 无阻尼振荡周期（毫秒）
	Period float64 `yaml:"period"`
}

// Options 是滚动引擎的完整配置
type Options struct {
	// Direction 滚动方向："vertical" 或 "horizontal"
	Direction string `yaml:"direction"`

	// ParticleRounding 粒子位置的量化粒度（防止亚像素布局抖动）
	ParticleRounding float64 `yaml:"particleRounding"`

	// EdgeSpring 边界弹簧参数
	EdgeSpring SpringOptions `yaml:"edgeSpring"`

	// WheelScale 滚轮增量的缩放系数
	WheelScale float64 `yaml:"wheelScale"`

	// Drag 惯性滑行的阻力系数（每秒）
	Drag float64 `yaml:"drag"`

	// RemoveDurationMs 条目移除过渡的时长（毫秒），0 表示立即移除
	RemoveDurationMs float64 `yaml:"removeDurationMs"`

	// RemoveEasing 条目移除过渡的缓动曲线名（见 utils.EasingByName）
	RemoveEasing string `yaml:"removeEasing"`

	// EmbedContainer 是否把布局结果嵌入独立容器
	// 开启后提交结果的变换以容器原点为基准（容器自身再被外部定位）
	EmbedContainer bool `yaml:"embedContainer"`
}

// Default 返回默认配置
func Default() Options {
	return Options{
		Direction:        DirectionVertical,
		ParticleRounding: 0.2,
		EdgeSpring: SpringOptions{
			DampingRatio: 0.8,
			Period:       300,
		},
		WheelScale:       0.1,
		Drag:             3.0,
		RemoveDurationMs: 0,
		RemoveEasing:     "easeInOutQuad",
	}
}

// Axis 返回配置对应的滚动轴（默认垂直）
func (o Options) Axis() layout.Axis {
	if o.Direction == DirectionHorizontal {
		return layout.AxisX
	}
	return layout.AxisY
}

// Spring 返回物理模型使用的弹簧参数
func (o Options) Spring() physics.SpringConfig {
	return physics.SpringConfig{
		DampingRatio: o.EdgeSpring.DampingRatio,
		Period:       o.EdgeSpring.Period,
	}
}

// RemoveTransition 返回条目移除过渡，未配置时长时返回 nil
func (o Options) RemoveTransition() *layout.Transition {
	if o.RemoveDurationMs <= 0 {
		return nil
	}
	easing, ok := utils.EasingByName(o.RemoveEasing)
	if !ok {
		easing = utils.EaseInOutQuad
	}
	return &layout.Transition{
		Duration: time.Duration(o.RemoveDurationMs * float64(time.Millisecond)),
		Easing:   easing,
	}
}

// Parse 在默认配置的基础上解析 YAML 数据
func Parse(data []byte) (Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Default(), fmt.Errorf("failed to parse options: %w", err)
	}
	if err := opts.validate(); err != nil {
		return Default(), err
	}
	return opts, nil
}

// Load 从文件加载配置，文件不存在时返回默认配置（不报错）
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read options file: %w", err)
	}
	return Parse(data)
}

// validate 检查配置取值
func (o Options) validate() error {
	if o.Direction != DirectionVertical && o.Direction != DirectionHorizontal {
		return fmt.Errorf("invalid direction: %q", o.Direction)
	}
	if o.ParticleRounding < 0 {
		return fmt.Errorf("particleRounding must be >= 0, got %v", o.ParticleRounding)
	}
	if o.EdgeSpring.DampingRatio <= 0 {
		return fmt.Errorf("edgeSpring.dampingRatio must be > 0, got %v", o.EdgeSpring.DampingRatio)
	}
	if o.EdgeSpring.Period <= 0 {
		return fmt.Errorf("edgeSpring.period must be > 0, got %v", o.EdgeSpring.Period)
	}
	if o.Drag < 0 {
		return fmt.Errorf("drag must be >= 0, got %v", o.Drag)
	}
	return nil
}
