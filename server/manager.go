package server

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"paddleball/game"
)

// ErrManagerClosed 管理器已停止，不再创建房间
var ErrManagerClosed = errors.New("room manager closed")

// RoomManager 管理多个房间的生命周期；每个房间一个 Tick 协程，随 ctx 结束
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	ctx         context.Context
	wg          sync.WaitGroup
	cfg         game.Config
	tickRate    int
	defaultRoom string
}

// NewRoomManager 创建房间管理器，新房间使用 cfg 作为初始配置
func NewRoomManager(ctx context.Context, cfg game.Config, tickRate int, defaultRoom string) *RoomManager {
	if defaultRoom == "" {
		defaultRoom = "room-1"
	}
	return &RoomManager{
		rooms:       make(map[string]*Room),
		ctx:         ctx,
		cfg:         cfg,
		tickRate:    tickRate,
		defaultRoom: defaultRoom,
	}
}

// DefaultRoom 默认房间 ID
func (m *RoomManager) DefaultRoom() string { return m.defaultRoom }

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	if m.ctx.Err() != nil {
		return nil, ErrManagerClosed
	}
	r, err := NewRoom(id, m.cfg, m.tickRate)
	if err != nil {
		return nil, fmt.Errorf("create room %s: %w", id, err)
	}
	m.rooms[id] = r
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		r.Run(m.ctx)
	}()
	Log.Infof("room created: %s", id)
	return r, nil
}

// Room 查找已存在的房间
func (m *RoomManager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Rooms 所有房间摘要，按 ID 排序
func (m *RoomManager) Rooms() []RoomView {
	m.mu.RLock()
	views := make([]RoomView, 0, len(m.rooms))
	for _, r := range m.rooms {
		views = append(views, r.View())
	}
	m.mu.RUnlock()
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// ApplyConfig 将新配置下发给所有房间（下一局生效），并作为新房间的默认配置
func (m *RoomManager) ApplyConfig(cfg game.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	for _, r := range m.rooms {
		if err := r.UpdateConfig(cfg); err != nil {
			return err
		}
	}
	Log.Infof("config applied to %d rooms", len(m.rooms))
	return nil
}

// Wait 等待所有房间协程退出（ctx 取消之后调用）
func (m *RoomManager) Wait() {
	m.wg.Wait()
}
