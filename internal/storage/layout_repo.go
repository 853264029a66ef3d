package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/hexboard/internal/mapstring"
)

// ErrLayoutNotFound возвращается при удалении несуществующей раскладки
var ErrLayoutNotFound = errors.New("storage: layout not found")

// LayoutRecord - сохранённая раскладка доски.
// Хранится только строка карты в нормализованном виде.
type LayoutRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MapString string    `json:"map_string"`
	Tiles     int       `json:"tiles"`
	SavedAt   time.Time `json:"saved_at"`
}

// LayoutRepo определяет интерфейс хранилища раскладок.
// Раскладки адресуются именем; ID назначается при первом сохранении
// и не меняется при перезаписи.
type LayoutRepo interface {
	// Save проверяет и нормализует строку карты и сохраняет её под именем name
	Save(ctx context.Context, name, mapString string) (LayoutRecord, error)

	// Load возвращает раскладку; bool == false, если имени нет
	Load(ctx context.Context, name string) (LayoutRecord, bool, error)

	// Delete удаляет раскладку, ErrLayoutNotFound если её нет
	Delete(ctx context.Context, name string) error

	// List возвращает все раскладки, отсортированные по имени
	List(ctx context.Context) ([]LayoutRecord, error)

	// Close освобождает ресурсы хранилища
	Close() error
}

// newRecord валидирует входные данные и строит запись.
// prev - предыдущая версия записи, если она была.
func newRecord(name, mapString string, prev *LayoutRecord) (LayoutRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LayoutRecord{}, fmt.Errorf("недействительное имя раскладки: %q", name)
	}

	normalized, err := mapstring.Normalize(mapString)
	if err != nil {
		return LayoutRecord{}, err
	}
	placements, err := mapstring.Load(normalized)
	if err != nil {
		return LayoutRecord{}, err
	}

	record := LayoutRecord{
		ID:        uuid.New(),
		Name:      name,
		MapString: normalized,
		Tiles:     len(placements),
		SavedAt:   time.Now().UTC(),
	}
	if prev != nil {
		record.ID = prev.ID
	}
	return record, nil
}

// checkContext проверяет контекст на отмену
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
