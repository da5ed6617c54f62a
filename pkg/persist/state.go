// Package persist 提供滚动状态的跨会话持久化
//
// 按列表 ID 保存/恢复滚动偏移与锚点条目，使应用重启后列表回到
// 上次的位置。存储走 gdata 跨平台管理器，载荷使用 YAML 序列化。
package persist

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ScrollState 是单个列表的持久化滚动状态
type ScrollState struct {
	// Offset 滚动偏移（相对锚点条目）
	Offset float64 `yaml:"offset"`
	// AnchorID 锚点条目的 ID
	AnchorID string `yaml:"anchorId"`
}

// 存储路径常量
const stateObject = "scrollstate"

// StateManager 滚动状态管理器
// 负责滚动状态的加载、保存和内存管理
type StateManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
}

// NewStateManager 创建新的滚动状态管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，不持久化）
func NewStateManager(gdataManager *gdata.Manager) *StateManager {
	return &StateManager{gdataManager: gdataManager}
}

// Load 加载指定列表的滚动状态
//
// 如果 gdataManager 为 nil 或状态不存在，返回 (nil, nil)
//
// 返回：
//   - *ScrollState: 滚动状态，不存在时为 nil
//   - error: 如果加载或反序列化失败返回错误
func (sm *StateManager) Load(listID string) (*ScrollState, error) {
	// 降级模式：无法持久化
	if sm.gdataManager == nil {
		return nil, nil
	}

	if !sm.gdataManager.ObjectPropExists(stateObject, listID) {
		return nil, nil
	}

	data, err := sm.gdataManager.LoadObjectProp(stateObject, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scroll state: %w", err)
	}

	var state ScrollState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scroll state: %w", err)
	}

	return &state, nil
}

// Save 保存指定列表的滚动状态
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *StateManager) Save(listID string, state ScrollState) error {
	// 降级模式：无法持久化，但不报错
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&state)
	if err != nil {
		return fmt.Errorf("failed to marshal scroll state: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(stateObject, listID, data); err != nil {
		return fmt.Errorf("failed to save scroll state: %w", err)
	}

	log.Printf("[StateManager] Scroll state saved: list=%s offset=%.1f anchor=%s",
		listID, state.Offset, state.AnchorID)
	return nil
}
