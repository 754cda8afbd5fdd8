package pipeline

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Haoqing-Wu/ro-labeling-tool/export"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteName is the file name of the optional label database.
const SQLiteName = "labels.db"

// writeSQLite stores the run and all of its rows in a single transaction.
func writeSQLite(ctx context.Context, path string, m export.Manifest, ego []EgoRow, actors []ActorRow) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("apply pragma: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, source_file, source_sha256, generated_at, frame_count, usable_frames, window_seconds, fragment_seconds, ego_mode)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.SourceFileName, m.SourceSHA256, m.GeneratedAt.Format(time.RFC3339Nano),
		m.FrameCount, m.UsableFrames, m.Settings.WindowSeconds, m.Settings.FragmentSeconds, string(m.Settings.EgoMode),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	egoStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ego_points (run_id, path_index, start_frame, point_index, time_s, x_rel_m, y_rel_m, yaw_rel_rad, curvature, velocity_x_mps, accel_x_mps2, distance_at_node_m)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare ego insert: %w", err)
	}
	defer egoStmt.Close()
	for _, r := range ego {
		if _, err := egoStmt.ExecContext(ctx, m.RunID, r.PathIndex, r.StartFrame, r.PointIndex,
			r.Time, r.X, r.Y, r.Yaw, r.Curvature, r.VX, r.AX, r.Distance); err != nil {
			return fmt.Errorf("insert ego point %d/%d: %w", r.PathIndex, r.PointIndex, err)
		}
	}

	actorStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO actor_samples (run_id, fragment_index, sensor, slot, object_id, frame, class, position_x, position_y, velocity_x, velocity_y)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare actor insert: %w", err)
	}
	defer actorStmt.Close()
	for _, r := range actors {
		if _, err := actorStmt.ExecContext(ctx, m.RunID, r.FragmentIndex, r.Sensor, r.Slot, r.ObjectID,
			r.Frame, r.Class, r.X, r.Y, r.VX, r.VY); err != nil {
			return fmt.Errorf("insert actor sample %d@%d: %w", r.FragmentIndex, r.Frame, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
