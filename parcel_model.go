package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

type Config struct {
	AerosolDataPath string
	OutputDataDir   string
	Temperature     float64
	RelHumidity     float64
}

/*
Run one discretization.

    Args:
        aerosol_data_path (str): path of the aerosol configuration JSON file
            (empty = built-in reference configuration)
        output_data_dir (str): path of the output directory
        temperature: air temperature, K
        rh: relative humidity, -
*/
func run(
	aerosol_data_path string,
	output_data_dir string,
	temperature float64,
	rh float64,
) {
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		os.Mkdir(output_data_dir, 0755)
	}

	_, err := os.Stat(output_data_dir)
	if os.IsNotExist(err) {
		log.Fatalf("`%s` is not a directory", output_data_dir)
	}

	// ---- configuration ----

	var cfg *Configuration
	if aerosol_data_path == "" {
		log.Printf("Use the built-in reference configuration")
		cfg = default_configuration()
	} else {
		log.Printf("Load aerosol configuration from `%s`", aerosol_data_path)
		cfg, err = load_configuration(aerosol_data_path)
		if err != nil {
			log.Fatal(err)
		}
	}

	ambient, err := NewAmbientState(temperature, rh)
	if err != nil {
		log.Fatal(err)
	}

	// ---- discretization ----

	log.Printf("Discretize %d mode(s) into %d bins", cfg.md, cfg.sz)
	bins, err := discretize(cfg, ambient)
	if err != nil {
		log.Fatal(err)
	}

	// ---- save results ----

	r := NewRecorder(cfg.sz)
	r.recording(bins)
	out_path, err := r.export_csv(output_data_dir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Save size bins to `%s`", out_path)
}

func main() {
	var aerosol_data string
	flag.StringVar(&aerosol_data, "input", "", "aerosol configuration JSON file (default: built-in reference configuration)")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "output directory")

	var temperature float64
	flag.Float64Var(&temperature, "t", 283.15, "air temperature, K")

	var rh float64
	flag.Float64Var(&rh, "rh", 0.0, "relative humidity, 0-1")

	flag.Parse()

	// Print flag values
	fmt.Printf("aerosol_data: %s\n", aerosol_data)
	fmt.Printf("output_data_dir: %s\n", output_data_dir)
	fmt.Printf("temperature: %f\n", temperature)
	fmt.Printf("rh: %f\n", rh)

	start := time.Now()

	run(
		aerosol_data,
		output_data_dir,
		temperature,
		rh,
	)

	elapsedTime := time.Since(start)
	log.Printf("elapsed_time: %v [sec]", elapsedTime)
}
