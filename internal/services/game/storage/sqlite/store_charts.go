package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
)

// PutChart creates the chart or updates its name and notes.
func (s *Store) PutChart(ctx context.Context, record storage.ChartRecord) error {
	if record.ID <= 0 {
		return fmt.Errorf("chart id must be positive")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO charts (id, name, notes, created_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, notes = excluded.notes`,
		record.ID, record.Name, record.Notes, s.stamp(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put chart %d: %w", record.ID, err)
	}
	return nil
}

// GetChart returns the chart header.
func (s *Store) GetChart(ctx context.Context, chartID int64) (storage.ChartRecord, error) {
	var record storage.ChartRecord
	var createdAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, name, notes, created_at FROM charts WHERE id = ?", chartID,
	).Scan(&record.ID, &record.Name, &record.Notes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ChartRecord{}, fmt.Errorf("chart %d: %w", chartID, storage.ErrNotFound)
	}
	if err != nil {
		return storage.ChartRecord{}, fmt.Errorf("get chart %d: %w", chartID, err)
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

// ReplaceChartRows deletes the chart's rows and inserts rows in one transaction.
func (s *Store) ReplaceChartRows(ctx context.Context, chartID int64, rows []chart.Row) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM charts WHERE id = ?", chartID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("chart %d: %w", chartID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("check chart %d: %w", chartID, err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM chart_hit_stand WHERE chart_id = ?", chartID); err != nil {
			return fmt.Errorf("clear chart %d rows: %w", chartID, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO chart_hit_stand (chart_id, hand_kind, player_total, dealer_upcard, action)
VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare chart row insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx, chartID, string(row.Kind), row.PlayerTotal, row.DealerUpcard, string(row.Action)); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("chart %d row %s: %w", chartID, row.Situation(), storage.ErrAlreadyExists)
				}
				return fmt.Errorf("insert chart %d row %s: %w", chartID, row.Situation(), err)
			}
		}
		return nil
	})
}

// CountChartRows returns the number of rows in a chart.
func (s *Store) CountChartRows(ctx context.Context, chartID int64) (int, error) {
	var count int
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chart_hit_stand WHERE chart_id = ?", chartID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count chart %d rows: %w", chartID, err)
	}
	return count, nil
}

// LookupAction returns the chart row action, or chart.ActionNone when no
// row matches.
func (s *Store) LookupAction(ctx context.Context, chartID int64, kind chart.HandKind, playerTotal int, dealerUpcard string) (chart.Action, error) {
	var action string
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT action FROM chart_hit_stand
WHERE chart_id = ? AND hand_kind = ? AND player_total = ? AND dealer_upcard = ?`,
		chartID, string(kind), playerTotal, dealerUpcard,
	).Scan(&action)
	if errors.Is(err, sql.ErrNoRows) {
		return chart.ActionNone, nil
	}
	if err != nil {
		return chart.ActionNone, apperrors.Wrap(apperrors.CodeChartUnavailable, "strategy chart unavailable", err)
	}
	return chart.Action(action), nil
}
