package store

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"rsdashboard/internal/model"
)

const (
	// maxBuildRecords 保留的最近生成记录数
	maxBuildRecords = 50

	DefaultCacheExpiration = 15 * time.Minute
	cacheCleanupInterval   = 30 * time.Minute
)

// BuildRecord 一次生成请求的记录
type BuildRecord struct {
	RequestID  string    `json:"requestId"`
	Month      string    `json:"month"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMs int64     `json:"durationMs"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
}

type cachedDashboard struct {
	doc     *model.Dashboard
	modTime time.Time
}

// MemoryStore 已生成看板的内存缓存与生成记录。
// 缓存条目 15 分钟过期，且以 JSON 文件的修改时间为准，文件被外部重写后立即失效。
type MemoryStore struct {
	dashboards *cache.Cache
	builds     []BuildRecord
	mu         sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		dashboards: cache.New(DefaultCacheExpiration, cacheCleanupInterval),
	}
}

// GetDashboard 获取缓存的看板；modTime 与缓存时不一致视为未命中
func (s *MemoryStore) GetDashboard(month string, modTime time.Time) (*model.Dashboard, bool) {
	v, ok := s.dashboards.Get(month)
	if !ok {
		return nil, false
	}
	c := v.(cachedDashboard)
	if !c.modTime.Equal(modTime) {
		return nil, false
	}
	return c.doc, true
}

// SetDashboard 缓存看板
func (s *MemoryStore) SetDashboard(doc *model.Dashboard, modTime time.Time) {
	s.dashboards.Set(doc.Month, cachedDashboard{doc: doc, modTime: modTime}, cache.DefaultExpiration)
}

// Invalidate 删除某月缓存
func (s *MemoryStore) Invalidate(month string) {
	s.dashboards.Delete(month)
}

// Count 缓存的月份数（含已过期未清理的条目）
func (s *MemoryStore) Count() int {
	return s.dashboards.ItemCount()
}

// RecordBuild 追加生成记录，超出上限时丢弃最旧的
func (s *MemoryStore) RecordBuild(r BuildRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.builds = append(s.builds, r)
	if len(s.builds) > maxBuildRecords {
		s.builds = s.builds[len(s.builds)-maxBuildRecords:]
	}
}

// Builds 生成记录，最新在前
func (s *MemoryStore) Builds() []BuildRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]BuildRecord, len(s.builds))
	for i, r := range s.builds {
		out[len(s.builds)-1-i] = r
	}
	return out
}
