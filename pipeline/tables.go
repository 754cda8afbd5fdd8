package pipeline

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

var egoHeader = []string{
	"path_index", "start_frame", "point_index", "time_s", "x_rel_m", "y_rel_m", "yaw_rel_rad",
	"curvature", "velocity_x_mps", "accel_x_mps2", "distance_at_node_m",
}

var actorHeader = []string{
	"fragment_index", "sensor", "slot", "object_id", "frame", "class",
	"position_x", "position_y", "velocity_x", "velocity_y",
}

func writeEgoCSV(path string, rows []EgoRow) error {
	return writeCSV(path, egoHeader, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			strconv.Itoa(r.PathIndex),
			strconv.Itoa(r.StartFrame),
			strconv.Itoa(r.PointIndex),
			formatFloat(r.Time),
			formatFloat(r.X),
			formatFloat(r.Y),
			formatFloat(r.Yaw),
			formatFloat(r.Curvature),
			formatFloat(r.VX),
			formatFloat(r.AX),
			formatFloat(r.Distance),
		}
	})
}

func writeActorCSV(path string, rows []ActorRow) error {
	return writeCSV(path, actorHeader, len(rows), func(i int) []string {
		r := rows[i]
		return []string{
			strconv.Itoa(r.FragmentIndex),
			r.Sensor,
			strconv.Itoa(r.Slot),
			formatFloat(r.ObjectID),
			strconv.Itoa(r.Frame),
			formatFloat(r.Class),
			formatFloat(r.X),
			formatFloat(r.Y),
			formatFloat(r.VX),
			formatFloat(r.VY),
		}
	})
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type egoParquetRow struct {
	PathIndex  int64   `parquet:"name=path_index, type=INT64"`
	StartFrame int64   `parquet:"name=start_frame, type=INT64"`
	PointIndex int64   `parquet:"name=point_index, type=INT64"`
	Time       float64 `parquet:"name=time_s, type=DOUBLE"`
	X          float64 `parquet:"name=x_rel_m, type=DOUBLE"`
	Y          float64 `parquet:"name=y_rel_m, type=DOUBLE"`
	Yaw        float64 `parquet:"name=yaw_rel_rad, type=DOUBLE"`
	Curvature  float64 `parquet:"name=curvature, type=DOUBLE"`
	VX         float64 `parquet:"name=velocity_x_mps, type=DOUBLE"`
	AX         float64 `parquet:"name=accel_x_mps2, type=DOUBLE"`
	Distance   float64 `parquet:"name=distance_at_node_m, type=DOUBLE"`
}

type actorParquetRow struct {
	FragmentIndex int64   `parquet:"name=fragment_index, type=INT64"`
	Sensor        string  `parquet:"name=sensor, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Slot          int64   `parquet:"name=slot, type=INT64"`
	ObjectID      float64 `parquet:"name=object_id, type=DOUBLE"`
	Frame         int64   `parquet:"name=frame, type=INT64"`
	Class         float64 `parquet:"name=class, type=DOUBLE"`
	X             float64 `parquet:"name=position_x, type=DOUBLE"`
	Y             float64 `parquet:"name=position_y, type=DOUBLE"`
	VX            float64 `parquet:"name=velocity_x, type=DOUBLE"`
	VY            float64 `parquet:"name=velocity_y, type=DOUBLE"`
}

func writeEgoParquet(path string, rows []EgoRow) error {
	out := make([]egoParquetRow, len(rows))
	for i, r := range rows {
		out[i] = egoParquetRow{
			PathIndex:  int64(r.PathIndex),
			StartFrame: int64(r.StartFrame),
			PointIndex: int64(r.PointIndex),
			Time:       r.Time,
			X:          r.X,
			Y:          r.Y,
			Yaw:        r.Yaw,
			Curvature:  r.Curvature,
			VX:         r.VX,
			AX:         r.AX,
			Distance:   r.Distance,
		}
	}
	return writeParquet(path, out)
}

func writeActorParquet(path string, rows []ActorRow) error {
	out := make([]actorParquetRow, len(rows))
	for i, r := range rows {
		out[i] = actorParquetRow{
			FragmentIndex: int64(r.FragmentIndex),
			Sensor:        r.Sensor,
			Slot:          int64(r.Slot),
			ObjectID:      r.ObjectID,
			Frame:         int64(r.Frame),
			Class:         r.Class,
			X:             r.X,
			Y:             r.Y,
			VX:            r.VX,
			VY:            r.VY,
		}
	}
	return writeParquet(path, out)
}

func writeParquet[T any](path string, rows []T) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(T), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
