package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"wealthease-ai/internal/models"

	"github.com/google/uuid"
)

// MemorySettingsRepository keeps settings for the lifetime of the process.
type MemorySettingsRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]map[models.SettingKey]models.Setting
}

func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{
		items: make(map[uuid.UUID]map[models.SettingKey]models.Setting),
	}
}

func (r *MemorySettingsRepository) List(_ context.Context, namespace uuid.UUID) ([]models.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings := make([]models.Setting, 0, len(r.items[namespace]))
	for _, s := range r.items[namespace] {
		settings = append(settings, s)
	}
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].Key < settings[j].Key
	})
	return settings, nil
}

func (r *MemorySettingsRepository) Put(_ context.Context, setting *models.Setting) error {
	if setting.UpdatedAt.IsZero() {
		setting.UpdatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ns, ok := r.items[setting.Namespace]
	if !ok {
		ns = make(map[models.SettingKey]models.Setting)
		r.items[setting.Namespace] = ns
	}
	stored := *setting
	stored.Key = models.SettingKey(strings.Clone(string(setting.Key)))
	stored.Value = strings.Clone(setting.Value)
	ns[stored.Key] = stored
	return nil
}

func (r *MemorySettingsRepository) Delete(_ context.Context, namespace uuid.UUID, keys ...models.SettingKey) ([]models.SettingKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ns := r.items[namespace]
	var removed []models.SettingKey
	for _, k := range keys {
		if _, ok := ns[k]; ok {
			delete(ns, k)
			removed = append(removed, k)
		}
	}
	return removed, nil
}
