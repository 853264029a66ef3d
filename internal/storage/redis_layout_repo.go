package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/annel0/hexboard/internal/logging"
)

// RedisLayoutRepo хранит раскладки в Redis: по ключу на раскладку
// и множество имён для List
type RedisLayoutRepo struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *logging.Logger
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        // Адрес Redis сервера
	Password  string        // Пароль (пустой если не требуется)
	DB        int           // Номер базы данных
	KeyPrefix string        // Префикс для ключей
	TTL       time.Duration // Время жизни записей, 0 - бессрочно
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "hexmap:layout:",
	}
}

// NewRedisLayoutRepo подключается к Redis и проверяет соединение
func NewRedisLayoutRepo(ctx context.Context, config *RedisConfig) (*RedisLayoutRepo, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repo := &RedisLayoutRepo{
		client:    client,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
		logger:    logging.GetStorageLogger(),
	}
	repo.logger.Info("🔴 Connected to Redis at %s", config.Addr)
	return repo, nil
}

func (r *RedisLayoutRepo) key(name string) string {
	return r.keyPrefix + name
}

func (r *RedisLayoutRepo) indexKey() string {
	return r.keyPrefix + "_names"
}

// unindex убирает имя из индекса. Сбой не прерывает операцию:
// устаревшее имя будет вычищено следующим List.
func (r *RedisLayoutRepo) unindex(ctx context.Context, name string) {
	if err := r.client.SRem(ctx, r.indexKey(), name).Err(); err != nil {
		r.logger.Warn("не удалось убрать %q из индекса раскладок: %v", name, err)
	}
}

// Save сохраняет раскладку
func (r *RedisLayoutRepo) Save(ctx context.Context, name, mapString string) (LayoutRecord, error) {
	prev, found, err := r.Load(ctx, name)
	if err != nil {
		return LayoutRecord{}, err
	}
	var prevPtr *LayoutRecord
	if found {
		prevPtr = &prev
	}

	record, err := newRecord(name, mapString, prevPtr)
	if err != nil {
		return LayoutRecord{}, err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return LayoutRecord{}, fmt.Errorf("ошибка сериализации раскладки: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(record.Name), data, r.ttl)
	pipe.SAdd(ctx, r.indexKey(), record.Name)
	if _, err := pipe.Exec(ctx); err != nil {
		return LayoutRecord{}, fmt.Errorf("ошибка записи в Redis: %w", err)
	}
	return record, nil
}

// Load загружает раскладку
func (r *RedisLayoutRepo) Load(ctx context.Context, name string) (LayoutRecord, bool, error) {
	data, err := r.client.Get(ctx, r.key(strings.TrimSpace(name))).Bytes()
	if err == redis.Nil {
		return LayoutRecord{}, false, nil
	}
	if err != nil {
		return LayoutRecord{}, false, fmt.Errorf("ошибка чтения из Redis: %w", err)
	}

	var record LayoutRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return LayoutRecord{}, false, fmt.Errorf("ошибка десериализации раскладки: %w", err)
	}
	return record, true, nil
}

// Delete удаляет раскладку
func (r *RedisLayoutRepo) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	removed, err := r.client.Del(ctx, r.key(name)).Result()
	if err != nil {
		return fmt.Errorf("ошибка удаления из Redis: %w", err)
	}
	r.unindex(ctx, name)
	if removed == 0 {
		return fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}
	return nil
}

// List возвращает все раскладки по имени.
// Имена с истёкшим TTL вычищаются из индекса.
func (r *RedisLayoutRepo) List(ctx context.Context) ([]LayoutRecord, error) {
	names, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из Redis: %w", err)
	}

	records := make([]LayoutRecord, 0, len(names))
	for _, name := range names {
		record, found, err := r.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		if !found {
			r.unindex(ctx, name)
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Close закрывает соединение с Redis
func (r *RedisLayoutRepo) Close() error {
	return r.client.Close()
}
