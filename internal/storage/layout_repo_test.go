package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/hexboard/internal/config"
	"github.com/annel0/hexboard/internal/logging"
	"github.com/annel0/hexboard/internal/mapstring"
)

// runLayoutRepoSuite проверяет общий контракт LayoutRepo
func runLayoutRepoSuite(t *testing.T, repo LayoutRepo) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		record, err := repo.Save(ctx, "six-player", "7  83b2,26")
		require.NoError(t, err)
		assert.Equal(t, "six-player", record.Name)
		assert.Equal(t, "7 83B2 26", record.MapString)
		assert.Equal(t, 4, record.Tiles)
		assert.NotEqual(t, uuid.Nil, record.ID)

		loaded, found, err := repo.Load(ctx, "six-player")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, record.ID, loaded.ID)
		assert.Equal(t, record.MapString, loaded.MapString)
		assert.WithinDuration(t, record.SavedAt, loaded.SavedAt, time.Second)
	})

	t.Run("Overwrite keeps ID", func(t *testing.T) {
		first, err := repo.Save(ctx, "draft", "1 2 3")
		require.NoError(t, err)
		second, err := repo.Save(ctx, " draft ", "{4} 1 2 3")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		loaded, found, err := repo.Load(ctx, "draft")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "{4} 1 2 3", loaded.MapString)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, found, err := repo.Load(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := repo.Save(ctx, "bad", "1 2 x")
		assert.True(t, errors.Is(err, mapstring.ErrFormat), "получено %v", err)

		_, err = repo.Save(ctx, "  ", "1 2 3")
		assert.Error(t, err)

		_, found, err := repo.Load(ctx, "bad")
		require.NoError(t, err)
		assert.False(t, found, "невалидная раскладка не должна сохраняться")
	})

	t.Run("List and Delete", func(t *testing.T) {
		records, err := repo.List(ctx)
		require.NoError(t, err)
		names := make([]string, 0, len(records))
		for _, r := range records {
			names = append(names, r.Name)
		}
		assert.Equal(t, []string{"draft", "six-player"}, names)

		require.NoError(t, repo.Delete(ctx, "draft"))
		err = repo.Delete(ctx, "draft")
		assert.ErrorIs(t, err, ErrLayoutNotFound)

		records, err = repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "six-player", records[0].Name)
	})
}

func TestMemoryLayoutRepo(t *testing.T) {
	repo := NewMemoryLayoutRepo()
	runLayoutRepoSuite(t, repo)
	assert.Equal(t, 1, repo.Count())
	assert.NoError(t, repo.Close())

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Save(canceled, "x", "1")
	assert.Equal(t, context.Canceled, err)
	_, _, err = repo.Load(canceled, "x")
	assert.Equal(t, context.Canceled, err)
}

func TestBadgerLayoutRepo(t *testing.T) {
	for _, compress := range []bool{false, true} {
		t.Run(fmt.Sprintf("compress=%v", compress), func(t *testing.T) {
			dir := t.TempDir()
			repo, err := NewBadgerLayoutRepo(dir, compress)
			require.NoError(t, err)
			runLayoutRepoSuite(t, repo)
			require.NoError(t, repo.Close())
			require.NoError(t, repo.Close())

			_, _, err = repo.Load(context.Background(), "six-player")
			assert.Error(t, err, "закрытое хранилище")

			// Данные переживают переоткрытие, даже со сменой режима сжатия
			reopened, err := NewBadgerLayoutRepo(dir, !compress)
			require.NoError(t, err)
			defer reopened.Close()

			record, found, err := reopened.Load(context.Background(), "six-player")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "7 83B2 26", record.MapString)
		})
	}
}

func TestBadgerLayoutRepoInMemory(t *testing.T) {
	repo, err := NewBadgerLayoutRepo("", true)
	require.NoError(t, err)
	defer repo.Close()
	runLayoutRepoSuite(t, repo)
}

func TestRedisLayoutRepo(t *testing.T) {
	addr := os.Getenv("HEXMAP_TEST_REDIS")
	if addr == "" {
		t.Skip("HEXMAP_TEST_REDIS не задан, пропускаем тест Redis")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("hexmap:test:%d:", time.Now().UnixNano())
	repo, err := NewRedisLayoutRepo(ctx, &RedisConfig{Addr: addr, KeyPrefix: prefix})
	require.NoError(t, err)
	defer func() {
		records, _ := repo.List(ctx)
		for _, r := range records {
			_ = repo.Delete(ctx, r.Name)
		}
		repo.Close()
	}()
	runLayoutRepoSuite(t, repo)
}

func TestRedisUnindexLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logging.Configure(logging.Options{Console: &buf, ConsoleLevel: logging.INFO})
	defer logging.Configure(logging.Options{ConsoleLevel: logging.INFO, FileLevel: logging.DEBUG})
	logger, err := logging.NewLogger("storage")
	require.NoError(t, err)

	// Порт 1 закрыт: клиент создаётся без проверки соединения
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	repo := &RedisLayoutRepo{client: client, keyPrefix: "hexmap:test:", logger: logger}
	defer repo.Close()

	repo.unindex(context.Background(), "draft")
	assert.Contains(t, buf.String(), `[WARN] [storage] не удалось убрать "draft" из индекса раскладок`)
}

func TestInstrumentedRepo(t *testing.T) {
	reg := prometheus.NewRegistry()
	repo, err := NewInstrumentedRepo(NewMemoryLayoutRepo(), "memory", reg)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.Save(ctx, "a", "1 2")
	require.NoError(t, err)
	_, err = repo.Save(ctx, "b", "1 q")
	require.Error(t, err)
	_, _, err = repo.Load(ctx, "a")
	require.NoError(t, err)
	_, _, err = repo.Load(ctx, "zzz")
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Error(t, repo.Delete(ctx, "zzz"))

	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("save", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("load", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("load_miss", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("list", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("delete", "error")))

	// Повторная регистрация тех же метрик отклоняется
	_, err = NewInstrumentedRepo(NewMemoryLayoutRepo(), "memory", reg)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, config.StoreConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryLayoutRepo{}, repo)

	repo, err = Open(ctx, config.StoreConfig{Backend: "badger", BadgerDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &BadgerLayoutRepo{}, repo)
	require.NoError(t, repo.Close())

	_, err = Open(ctx, config.StoreConfig{Backend: "etcd"})
	assert.Error(t, err)
}
