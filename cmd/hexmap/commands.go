package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/annel0/hexboard/internal/adjacency"
	"github.com/annel0/hexboard/internal/board"
	"github.com/annel0/hexboard/internal/config"
	"github.com/annel0/hexboard/internal/hex"
	"github.com/annel0/hexboard/internal/logging"
	"github.com/annel0/hexboard/internal/mapstring"
	"github.com/annel0/hexboard/internal/storage"
	"github.com/annel0/hexboard/internal/vec"
)

type AdjacentOptions struct {
	MapString string
	Hex       string
	Links     string
}

// runNormalize печатает строку карты в каноническом виде
func runNormalize(w io.Writer, text string) error {
	normalized, err := mapstring.Normalize(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, normalized)
	return nil
}

// runValidate печатает результат проверки и возвращает его
func runValidate(w io.Writer, text string) bool {
	if mapstring.Validate(text) {
		fmt.Fprintln(w, "✅ valid")
		return true
	}
	fmt.Fprintln(w, "❌ invalid")
	return false
}

// runParse печатает каждую позицию строки карты с её гексом
func runParse(w io.Writer, text string) error {
	entries, err := mapstring.Parse(text)
	if err != nil {
		return err
	}
	for i, entry := range entries {
		h, err := hex.FromIndex(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%3d  %-12s %s\n", i, h, entry)
	}
	return nil
}

func runHex(w io.Writer, index int) error {
	h, err := hex.FromIndex(index)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, h)
	return nil
}

func runIndex(w io.Writer, text string) error {
	h, err := hex.Parse(text)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, hex.ToIndex(h))
	return nil
}

// runPosition печатает центр и углы гекса в координатах стола
func runPosition(w io.Writer, cfg *config.Config, text string) error {
	h, err := hex.Parse(text)
	if err != nil {
		return err
	}
	layout := hex.Layout{
		HalfSize: cfg.Layout.GetHalfSize(),
		Origin:   vec.Vec2Float{X: cfg.Layout.OriginX, Y: cfg.Layout.OriginY},
	}
	center := layout.ToPosition(h)
	fmt.Fprintf(w, "center %.4f %.4f\n", center.X, center.Y)
	for i, c := range layout.Corners(h) {
		fmt.Fprintf(w, "corner%d %.4f %.4f\n", i, c.X, c.Y)
	}
	return nil
}

// runAdjacent строит доску из строки карты и печатает смежные гексы
func runAdjacent(w io.Writer, cfg *config.Config, opts *AdjacentOptions) error {
	logger := logging.GetCLILogger()

	target, err := hex.Parse(opts.Hex)
	if err != nil {
		return err
	}
	viewerLinks, err := parseLinks(opts.Links)
	if err != nil {
		return err
	}

	catalog := board.NewCatalog()
	if cfg.Catalog.Path != "" {
		catalog, err = board.LoadCatalogFile(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		logger.Debug("каталог %s: %d типов тайлов", cfg.Catalog.Path, catalog.Len())
	}

	placements, err := mapstring.Load(opts.MapString)
	if err != nil {
		return err
	}
	tiles := make([]board.Tile, 0, len(placements))
	for _, p := range placements {
		if _, ok := catalog.TileType(p.Entry.Tile); !ok && catalog.Len() > 0 {
			logger.Warn("тайл %d на %v отсутствует в каталоге", p.Entry.Tile, p.Hex)
		}
		tiles = append(tiles, p.Tile())
	}
	snap := board.NewSnapshot(catalog, tiles, nil)

	start := time.Now()
	resolver := adjacency.NewResolver(adjacency.NewGraph())
	adjacent := resolver.Adjacent(target, snap, adjacency.Viewer{Links: viewerLinks})
	logger.Debug("смежность %v: %d гексов за %v", target, adjacent.Len(), time.Since(start))

	for _, h := range adjacent.Sorted() {
		marker := " "
		if snap.Occupied(h) {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %4d  %s\n", marker, hex.ToIndex(h), h)
	}
	return nil
}

// parseLinks разбирает список пар вида "alpha:beta,gamma:delta"
func parseLinks(text string) ([]adjacency.Link, error) {
	var links []adjacency.Link
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		a, b, ok := strings.Cut(item, ":")
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if !ok || a == "" || b == "" {
			return nil, fmt.Errorf("неверная связь червоточин %q, ожидается a:b", item)
		}
		links = append(links, adjacency.Link{A: a, B: b})
	}
	return links, nil
}

// runStore выполняет команды хранилища раскладок
func runStore(ctx context.Context, w io.Writer, repo storage.LayoutRepo, command, name, mapString string) error {
	switch command {
	case "save":
		record, err := repo.Save(ctx, name, mapString)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "💾 %s %s (%d tiles)\n", record.ID, record.Name, record.Tiles)

	case "load":
		record, found, err := repo.Load(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %q", storage.ErrLayoutNotFound, name)
		}
		fmt.Fprintln(w, record.MapString)

	case "list":
		records, err := repo.List(ctx)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Fprintf(w, "%-20s %3d  %s  %s\n", r.Name, r.Tiles, r.SavedAt.Format(time.RFC3339), r.MapString)
		}

	case "delete":
		if err := repo.Delete(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(w, "🗑️  %s\n", name)

	default:
		return fmt.Errorf("неизвестная команда хранилища %q", command)
	}
	return nil
}
