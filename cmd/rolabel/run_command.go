package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Haoqing-Wu/ro-labeling-tool/config"
	"github.com/Haoqing-Wu/ro-labeling-tool/extract"
	"github.com/Haoqing-Wu/ro-labeling-tool/pipeline"
)

type runFlags struct {
	dataFolder     string
	logsFolder     string
	rangeSeconds   float64
	startFrame     int
	egoMode        string
	sensors        []string
	emitIncomplete bool
	format         string
	sqlite         bool
	overwrite      bool
	noProgress     bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract ego paths and actor fragments into a label bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				DataFolder: cfg.Paths.DataFolder,
				LogsFolder: cfg.Paths.LogsFolder,
				Format:     cfg.Output.Format,
				Overwrite:  cfg.Output.Overwrite,
				CopySource: cfg.Output.CopySource,
				SQLite:     cfg.Output.SQLite,
				Extract:    cfg.ExtractConfig(),
				Logger:     logger,
			}
			progress := newProgressReporter(cmd.ErrOrStderr(), !flags.noProgress)
			opts.Progress = progress.Report

			res, err := pipeline.Run(cmd.Context(), opts)
			progress.Finish()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRunSummary(res))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.dataFolder, "data_folder", "./data/", "Folder holding the recording, or the recording file")
	f.StringVar(&flags.logsFolder, "logs_folder", "./labels/", "Folder that receives the label bundle")
	f.Float64Var(&flags.rangeSeconds, "range", 4.0, "Ego window and actor fragment length in seconds")
	f.IntVar(&flags.startFrame, "start_frame", 0, "First frame of the first ego window")
	f.StringVar(&flags.egoMode, "ego-mode", string(extract.Sliding), "Ego window placement (sliding, disjoint)")
	f.StringSliceVar(&flags.sensors, "sensor", nil, "Object list source to segment (BV2, LRR1); repeatable")
	f.BoolVar(&flags.emitIncomplete, "emit-incomplete", false, "Keep identity runs that break before a full fragment")
	f.StringVar(&flags.format, "format", pipeline.FormatParquet, "Trajectory table format (parquet, csv, jsonl)")
	f.BoolVar(&flags.sqlite, "sqlite", false, "Also write labels.db")
	f.BoolVar(&flags.overwrite, "overwrite", false, "Allow writing into a non-empty logs folder")
	f.BoolVar(&flags.noProgress, "no-progress", false, "Disable progress bars")

	return cmd
}

// apply overrides configuration values with the flags set on the command line.
func (f runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	var err error
	if changed("data_folder") {
		if cfg.Paths.DataFolder, err = config.ExpandPath(f.dataFolder); err != nil {
			return fmt.Errorf("--data_folder: %w", err)
		}
	}
	if changed("logs_folder") {
		if cfg.Paths.LogsFolder, err = config.ExpandPath(f.logsFolder); err != nil {
			return fmt.Errorf("--logs_folder: %w", err)
		}
	}
	if changed("range") {
		cfg.Extraction.WindowSeconds = f.rangeSeconds
		cfg.Extraction.FragmentSeconds = f.rangeSeconds
	}
	if changed("start_frame") {
		cfg.Extraction.StartFrame = f.startFrame
	}
	if changed("ego-mode") {
		cfg.Extraction.EgoMode = strings.ToLower(strings.TrimSpace(f.egoMode))
	}
	if changed("sensor") {
		cfg.Extraction.Sensors = nil
		for _, s := range f.sensors {
			cfg.Extraction.Sensors = append(cfg.Extraction.Sensors, strings.ToUpper(strings.TrimSpace(s)))
		}
	}
	if changed("emit-incomplete") {
		cfg.Extraction.EmitIncomplete = f.emitIncomplete
	}
	if changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(f.format))
	}
	if changed("sqlite") {
		cfg.Output.SQLite = f.sqlite
	}
	if changed("overwrite") {
		cfg.Output.Overwrite = f.overwrite
	}
	return cfg.Validate()
}

func renderRunSummary(res *pipeline.Result) string {
	rows := [][]string{
		{"Recording", res.RecordingPath},
		{"Run ID", res.RunID},
		{"Frames", strconv.Itoa(res.Frames)},
		{"Usable frames", strconv.Itoa(res.UsableFrames)},
		{"Ego paths", strconv.Itoa(res.EgoPathCount)},
		{"Actor fragments", strconv.Itoa(res.ActorFragmentCount)},
	}
	sensors := make([]string, 0, len(res.FragmentsBySensor))
	for s := range res.FragmentsBySensor {
		sensors = append(sensors, s)
	}
	sort.Strings(sensors)
	for _, s := range sensors {
		rows = append(rows, []string{"  " + s, strconv.Itoa(res.FragmentsBySensor[s])})
	}
	rows = append(rows,
		[]string{"Ego paths file", res.EgoPathsPath},
		[]string{"Actor fragments file", res.ActorFragmentsPath},
		[]string{"Manifest", res.ManifestPath},
	)
	if res.SQLitePath != "" {
		rows = append(rows, []string{"SQLite", res.SQLitePath})
	}
	if res.SourceCopyPath != "" {
		rows = append(rows, []string{"Source copy", res.SourceCopyPath})
	}
	for _, w := range res.Warnings {
		rows = append(rows, []string{"Warning", w})
	}
	return renderTable([]string{"Item", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
}
