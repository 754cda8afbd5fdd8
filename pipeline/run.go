// Package pipeline runs one labeling pass: it loads a recording, extracts ego
// paths and actor fragments and writes them as a label bundle.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Haoqing-Wu/ro-labeling-tool/export"
	"github.com/Haoqing-Wu/ro-labeling-tool/extract"
	"github.com/Haoqing-Wu/ro-labeling-tool/logging"
	"github.com/Haoqing-Wu/ro-labeling-tool/recording"
)

// Run executes the full labeling pipeline and writes all artifacts to
// opts.LogsFolder. A zero opts.Extract means extract.DefaultConfig.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.DataFolder) == "" {
		return nil, fmt.Errorf("data folder is required")
	}
	if strings.TrimSpace(opts.LogsFolder) == "" {
		return nil, fmt.Errorf("logs folder is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	cfg := opts.Extract
	if cfg.WindowSeconds == 0 && cfg.FragmentSeconds == 0 && cfg.TargetPoints == 0 {
		cfg = extract.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	path, err := recording.Discover(opts.DataFolder)
	if err != nil {
		return nil, err
	}
	logger.Info("loading recording", "path", path)
	rec, err := recording.Load(path, nil)
	if err != nil {
		return nil, err
	}
	table := rec.Table()
	logger.Info("recording loaded",
		"frames", table.Frames(),
		"usable_frames", table.Len(),
		"signals", len(table.Names()),
		"dropped", len(table.Dropped()),
		"ignored", len(rec.Ignored),
	)

	ex, err := extract.New(table, cfg)
	if err != nil {
		return nil, err
	}
	ex.SetProgress(opts.Progress)

	if err := export.EnsureOutputDir(opts.LogsFolder, opts.Overwrite); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	egoPaths := ex.GenerateEgoPaths()
	logger.Info("ego paths generated", "count", len(egoPaths), "window_frames", ex.WindowFrames(), "mode", cfg.EgoMode)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fragments := ex.GenerateActorPaths()
	bySensor := make(map[string]int)
	for sensor, frags := range extract.BySensor(fragments) {
		bySensor[sensor] = len(frags)
	}
	logger.Info("actor fragments generated", "count", len(fragments), "fragment_frames", ex.FragmentFrames(), "by_sensor", bySensor)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	egoRows := FlattenEgoPaths(egoPaths)
	actorRows := FlattenFragments(fragments)

	egoPath := filepath.Join(opts.LogsFolder, "ego_paths."+format)
	actorPath := filepath.Join(opts.LogsFolder, "actor_fragments."+format)
	switch format {
	case FormatCSV:
		if err := writeEgoCSV(egoPath, egoRows); err != nil {
			return nil, fmt.Errorf("write ego csv: %w", err)
		}
		if err := writeActorCSV(actorPath, actorRows); err != nil {
			return nil, fmt.Errorf("write actor csv: %w", err)
		}
	case FormatParquet:
		if err := writeEgoParquet(egoPath, egoRows); err != nil {
			return nil, fmt.Errorf("write ego parquet: %w", err)
		}
		if err := writeActorParquet(actorPath, actorRows); err != nil {
			return nil, fmt.Errorf("write actor parquet: %w", err)
		}
	case FormatJSONL:
		if err := export.WriteJSONL(egoPath, egoPaths); err != nil {
			return nil, fmt.Errorf("write ego jsonl: %w", err)
		}
		if err := export.WriteJSONL(actorPath, fragments); err != nil {
			return nil, fmt.Errorf("write actor jsonl: %w", err)
		}
	}

	manifest := export.NewManifest(export.Source{
		Path:      rec.Path,
		SHA256:    rec.SHA256,
		SizeBytes: rec.SizeBytes,
	}, table, rec.Ignored, cfg)
	manifest.EgoPathCount = len(egoPaths)
	manifest.ActorFragmentCount = len(fragments)
	manifest.FragmentsBySensor = bySensor

	result := &Result{
		OutputDir:          opts.LogsFolder,
		RecordingPath:      rec.Path,
		EgoPathsPath:       egoPath,
		ActorFragmentsPath: actorPath,
		RunID:              manifest.RunID,
		Frames:             table.Frames(),
		UsableFrames:       table.Len(),
		EgoPathCount:       len(egoPaths),
		ActorFragmentCount: len(fragments),
		FragmentsBySensor:  bySensor,
	}

	files := []outputFile{
		{"ego_paths", egoPath, format},
		{"actor_fragments", actorPath, format},
	}

	if opts.SQLite {
		result.SQLitePath = filepath.Join(opts.LogsFolder, SQLiteName)
		if err := writeSQLite(ctx, result.SQLitePath, manifest, egoRows, actorRows); err != nil {
			return nil, fmt.Errorf("write %s: %w", SQLiteName, err)
		}
		files = append(files, outputFile{"database", result.SQLitePath, "sqlite"})
		logger.Info("sqlite database written", "path", result.SQLitePath)
	}

	if opts.CopySource {
		result.SourceCopyPath, err = export.CopySource(rec.Path, opts.LogsFolder)
		if err != nil {
			return nil, err
		}
		ext := strings.TrimPrefix(filepath.Ext(rec.Path), ".")
		files = append(files, outputFile{"source", result.SourceCopyPath, ext})
	}

	for _, f := range files {
		entry, err := export.Describe(opts.LogsFolder, f.path, f.role, f.format)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", f.role, err)
		}
		manifest.Files = append(manifest.Files, entry)
	}

	manifest.Warnings = export.BuildWarnings(&manifest, export.MissingEgoSignals(table))
	result.Warnings = manifest.Warnings
	for _, w := range manifest.Warnings {
		logger.Warn("data quality", "warning", w)
	}

	result.ManifestPath, err = export.WriteManifest(opts.LogsFolder, manifest)
	if err != nil {
		return nil, err
	}
	logger.Info("label bundle written", "dir", opts.LogsFolder, "run_id", manifest.RunID)
	return result, nil
}

type outputFile struct {
	role, path, format string
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatParquet, nil
	}
	if !slices.Contains(Formats, format) {
		return "", fmt.Errorf("unsupported format %q (expected %s)", format, strings.Join(Formats, "|"))
	}
	return format, nil
}
