package db

import (
	"context"
	"fmt"
)

// DemoCount to wynik agregacji uruchomień per demo.
type DemoCount struct {
	DemoID string
	Runs   int64
}

func (h *Handle) RecordRun(ctx context.Context, rec RunRecord) error {
	if err := h.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert run %s: %w", rec.RunID, err)
	}
	return nil
}

// RecentRuns zwraca ostatnie uruchomienia, najnowsze najpierw.
func (h *Handle) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []RunRecord
	err := h.DB.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("select recent runs: %w", err)
	}
	return out, nil
}

func (h *Handle) CountByDemo(ctx context.Context) ([]DemoCount, error) {
	var out []DemoCount
	err := h.DB.WithContext(ctx).
		Model(&RunRecord{}).
		Select("demo_id, count(*) as runs").
		Group("demo_id").
		Order("demo_id").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}
	return out, nil
}
