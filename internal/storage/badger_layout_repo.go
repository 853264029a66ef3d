package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/hexboard/internal/logging"
)

const (
	layoutKeyPrefix = "layout:"

	// первый байт значения
	encodingRaw  byte = 0
	encodingZstd byte = 1
)

// BadgerLayoutRepo хранит раскладки в BadgerDB
type BadgerLayoutRepo struct {
	db       *badger.DB
	dbPath   string
	mutex    sync.RWMutex
	isReady  bool
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	logger   *logging.Logger
}

// NewBadgerLayoutRepo открывает (или создаёт) хранилище в каталоге dir.
// Пустой dir открывает БД в памяти.
func NewBadgerLayoutRepo(dir string, compress bool) (*BadgerLayoutRepo, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать компрессор: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("не удалось создать декомпрессор: %w", err)
	}

	return &BadgerLayoutRepo{
		db:       db,
		dbPath:   dir,
		isReady:  true,
		compress: compress,
		encoder:  encoder,
		decoder:  decoder,
		logger:   logging.GetStorageLogger(),
	}, nil
}

// Close закрывает хранилище данных
func (r *BadgerLayoutRepo) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.isReady {
		return nil
	}

	r.isReady = false
	r.encoder.Close()
	r.decoder.Close()
	return r.db.Close()
}

// Save сохраняет раскладку
func (r *BadgerLayoutRepo) Save(ctx context.Context, name, mapString string) (LayoutRecord, error) {
	if err := checkContext(ctx); err != nil {
		return LayoutRecord{}, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.isReady {
		return LayoutRecord{}, fmt.Errorf("хранилище не готово")
	}

	var record LayoutRecord
	err := r.db.Update(func(txn *badger.Txn) error {
		prev, found, err := r.get(txn, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		var prevPtr *LayoutRecord
		if found {
			prevPtr = &prev
		}

		record, err = newRecord(name, mapString, prevPtr)
		if err != nil {
			return err
		}

		value, err := r.encode(record)
		if err != nil {
			return err
		}
		return txn.Set([]byte(layoutKeyPrefix+record.Name), value)
	})
	if err != nil {
		return LayoutRecord{}, err
	}

	r.logger.Debug("раскладка %q сохранена в BadgerDB (%d тайлов)", record.Name, record.Tiles)
	return record, nil
}

// Load загружает раскладку
func (r *BadgerLayoutRepo) Load(ctx context.Context, name string) (LayoutRecord, bool, error) {
	if err := checkContext(ctx); err != nil {
		return LayoutRecord{}, false, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if !r.isReady {
		return LayoutRecord{}, false, fmt.Errorf("хранилище не готово")
	}

	var (
		record LayoutRecord
		found  bool
	)
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		record, found, err = r.get(txn, strings.TrimSpace(name))
		return err
	})
	if err != nil {
		return LayoutRecord{}, false, err
	}
	return record, found, nil
}

// Delete удаляет раскладку
func (r *BadgerLayoutRepo) Delete(ctx context.Context, name string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	name = strings.TrimSpace(name)
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(layoutKeyPrefix + name)
		if _, err := txn.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
			}
			return fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
		}
		return txn.Delete(key)
	})
}

// List возвращает все раскладки по имени
func (r *BadgerLayoutRepo) List(ctx context.Context) ([]LayoutRecord, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if !r.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var records []LayoutRecord
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(layoutKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var record LayoutRecord
			err := it.Item().Value(func(val []byte) error {
				var err error
				record, err = r.decode(val)
				return err
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func (r *BadgerLayoutRepo) get(txn *badger.Txn, name string) (LayoutRecord, bool, error) {
	item, err := txn.Get([]byte(layoutKeyPrefix + name))
	if err == badger.ErrKeyNotFound {
		return LayoutRecord{}, false, nil
	}
	if err != nil {
		return LayoutRecord{}, false, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	var record LayoutRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = r.decode(val)
		return err
	})
	if err != nil {
		return LayoutRecord{}, false, err
	}
	return record, true, nil
}

// encode сериализует запись, при необходимости сжимая её zstd
func (r *BadgerLayoutRepo) encode(record LayoutRecord) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации раскладки: %w", err)
	}
	if !r.compress {
		return append([]byte{encodingRaw}, data...), nil
	}
	return r.encoder.EncodeAll(data, []byte{encodingZstd}), nil
}

// decode читает запись в любом из двух форматов
func (r *BadgerLayoutRepo) decode(val []byte) (LayoutRecord, error) {
	if len(val) == 0 {
		return LayoutRecord{}, fmt.Errorf("пустое значение в BadgerDB")
	}

	data := val[1:]
	switch val[0] {
	case encodingRaw:
	case encodingZstd:
		var err error
		data, err = r.decoder.DecodeAll(val[1:], nil)
		if err != nil {
			return LayoutRecord{}, fmt.Errorf("ошибка распаковки раскладки: %w", err)
		}
	default:
		return LayoutRecord{}, fmt.Errorf("неизвестный формат значения: %d", val[0])
	}

	var record LayoutRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return LayoutRecord{}, fmt.Errorf("ошибка десериализации раскладки: %w", err)
	}
	return record, nil
}
