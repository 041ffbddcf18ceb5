package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// SizeBinRow is one output record of the discretization. Mass is reported
// in micro g/m3 following the host-model convention.
type SizeBinRow struct {
	Bin         int     `csv:"bin"`
	DLower      float64 `csv:"d_lower_um"`
	DCenter     float64 `csv:"d_center_um"`
	DUpper      float64 `csv:"d_upper_um"`
	DWet        float64 `csv:"d_wet_um"`
	NumberConc  float64 `csv:"number_conc_cm-3"`
	MassConc    float64 `csv:"mass_conc_ug_m-3"`
	SurfaceArea float64 `csv:"surface_area_um2_cm-3"`
}

type Recorder struct {
	rows []*SizeBinRow
}

func NewRecorder(n_bins int) *Recorder {
	return &Recorder{rows: make([]*SizeBinRow, 0, n_bins)}
}

// Append the result of one discretization call.
func (self *Recorder) recording(bins []SizeBin) {
	for i, b := range bins {
		self.rows = append(self.rows, &SizeBinRow{
			Bin:         i,
			DLower:      b.d_lower,
			DCenter:     b.d_center,
			DUpper:      b.d_upper,
			DWet:        b.d_wet,
			NumberConc:  b.n,
			MassConc:    b.m * 1e9, // kg/m3 -> micro g/m3
			SurfaceArea: b.s,
		})
	}
}

/*
Save the recorded bins as a CSV file.

    Args:
        output_data_dir: path of the output directory

    Returns:
        path of the written file
*/
func (self *Recorder) export_csv(output_data_dir string) (string, error) {
	out_path := filepath.Join(output_data_dir, "result_bins.csv")

	file, err := os.Create(out_path)
	if err != nil {
		return "", fmt.Errorf("create `%s`: %w", out_path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&self.rows, file); err != nil {
		return "", fmt.Errorf("write `%s`: %w", out_path, err)
	}
	return out_path, nil
}
