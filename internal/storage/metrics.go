package storage

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedRepo оборачивает LayoutRepo Prometheus-метриками
type InstrumentedRepo struct {
	LayoutRepo

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewInstrumentedRepo регистрирует метрики в reg и возвращает обёртку.
// reg == nil означает глобальный регистр Prometheus.
func NewInstrumentedRepo(repo LayoutRepo, backend string, reg prometheus.Registerer) (*InstrumentedRepo, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	ir := &InstrumentedRepo{
		LayoutRepo: repo,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "hexmap",
			Subsystem:   "layout_store",
			Name:        "operations_total",
			Help:        "Число операций с хранилищем раскладок.",
			ConstLabels: prometheus.Labels{"backend": backend},
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "hexmap",
			Subsystem:   "layout_store",
			Name:        "operation_duration_seconds",
			Help:        "Длительность операций с хранилищем раскладок.",
			ConstLabels: prometheus.Labels{"backend": backend},
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{ir.operations, ir.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return ir, nil
}

func (ir *InstrumentedRepo) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ir.operations.WithLabelValues(op, result).Inc()
	ir.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Save сохраняет раскладку и учитывает операцию
func (ir *InstrumentedRepo) Save(ctx context.Context, name, mapString string) (LayoutRecord, error) {
	start := time.Now()
	record, err := ir.LayoutRepo.Save(ctx, name, mapString)
	ir.observe("save", start, err)
	return record, err
}

// Load загружает раскладку; отсутствие раскладки считается промахом
func (ir *InstrumentedRepo) Load(ctx context.Context, name string) (LayoutRecord, bool, error) {
	start := time.Now()
	record, found, err := ir.LayoutRepo.Load(ctx, name)
	op := "load"
	if err == nil && !found {
		op = "load_miss"
	}
	ir.observe(op, start, err)
	return record, found, err
}

// Delete удаляет раскладку и учитывает операцию
func (ir *InstrumentedRepo) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := ir.LayoutRepo.Delete(ctx, name)
	ir.observe("delete", start, err)
	return err
}

// List возвращает раскладки и учитывает операцию
func (ir *InstrumentedRepo) List(ctx context.Context) ([]LayoutRecord, error) {
	start := time.Now()
	records, err := ir.LayoutRepo.List(ctx)
	ir.observe("list", start, err)
	return records, err
}
