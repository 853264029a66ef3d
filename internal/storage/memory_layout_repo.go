package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryLayoutRepo реализует LayoutRepo в памяти.
// Используется по умолчанию и в тестах.
// ВНИМАНИЕ: Данные теряются при перезапуске!
type MemoryLayoutRepo struct {
	mu   sync.RWMutex
	data map[string]LayoutRecord // имя -> запись
}

// NewMemoryLayoutRepo создает новый репозиторий раскладок в памяти
func NewMemoryLayoutRepo() *MemoryLayoutRepo {
	return &MemoryLayoutRepo{
		data: make(map[string]LayoutRecord),
	}
}

// Save сохраняет раскладку в памяти
func (r *MemoryLayoutRepo) Save(ctx context.Context, name, mapString string) (LayoutRecord, error) {
	if err := checkContext(ctx); err != nil {
		return LayoutRecord{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var prev *LayoutRecord
	if existing, ok := r.data[strings.TrimSpace(name)]; ok {
		prev = &existing
	}
	record, err := newRecord(name, mapString, prev)
	if err != nil {
		return LayoutRecord{}, err
	}
	r.data[record.Name] = record
	return record, nil
}

// Load загружает раскладку из памяти
func (r *MemoryLayoutRepo) Load(ctx context.Context, name string) (LayoutRecord, bool, error) {
	if err := checkContext(ctx); err != nil {
		return LayoutRecord{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.data[strings.TrimSpace(name)]
	return record, ok, nil
}

// Delete удаляет раскладку из памяти
func (r *MemoryLayoutRepo) Delete(ctx context.Context, name string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.TrimSpace(name)
	if _, ok := r.data[name]; !ok {
		return fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}
	delete(r.data, name)
	return nil
}

// List возвращает все раскладки по имени
func (r *MemoryLayoutRepo) List(ctx context.Context) ([]LayoutRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]LayoutRecord, 0, len(r.data))
	for _, record := range r.data {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Close ничего не делает для хранилища в памяти
func (r *MemoryLayoutRepo) Close() error {
	return nil
}

// Count возвращает количество сохраненных раскладок (для тестов и отладки)
func (r *MemoryLayoutRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
