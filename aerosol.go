package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
)

/*
SpeciesProperties are the chemical properties of one aerosol species.

    Attributes:
        name: species label, metadata only
        density: density of the dry aerosol material, kg/m3
        mol_w: molecular weight of the dry aerosol material, kg/mol
        ion_n: ion dissociation count, -
        kappa: hygroscopicity parameter of kappa-Koehler theory, -
*/
type SpeciesProperties struct {
	Name    string  `json:"name" csv:"name"`
	Density float64 `json:"density" csv:"density"`
	MolW    float64 `json:"molecular_weight" csv:"molecular_weight"`
	IonN    int     `json:"ion_count" csv:"ion_count"`
	Kappa   float64 `json:"kappa" csv:"kappa"`
}

/*
Mode is one log-normal mode of the aerosol population. Alongside the index
into the species table each mode carries its own copy of the dominant-species
parameters (density1, mol_w1, ion_n1); the copy has to agree with the
referenced table entry.

    Attributes:
        n: total number concentration, 1/cm3
        dm: geometric mean diameter, micro m
        sig: geometric standard deviation, -
        species: index into the species table
        density1: dominant species density, kg/m3
        mol_w1: dominant species molecular weight, kg/mol
        ion_n1: dominant species ion dissociation count, -
*/
type Mode struct {
	N        float64 `json:"n"`
	Dm       float64 `json:"dm"`
	Sig      float64 `json:"sig"`
	Species  int     `json:"species"`
	Density1 float64 `json:"density1"`
	MolW1    float64 `json:"mol_w1"`
	IonN1    int     `json:"ion_n1"`
}

/*
Configuration is the validated, immutable parameter set of one aerosol
population. It is built once at initialization and only read afterwards; a
single Configuration may be shared between concurrent discretization calls.
*/
type Configuration struct {
	ty       int     // number of aerosol types
	sz       int     // number of size bins
	sp       int     // number of species
	md       int     // number of log-normal modes
	pressure float64 // ambient pressure, Pa
	k        float64 // grid half width, geometric standard deviations
	rtol     float64 // relative tolerance of the number conservation check
	rule     string  // per-bin integration rule
	d_min    float64 // explicit lower grid edge, micro m (0 = automatic)
	d_max    float64 // explicit upper grid edge, micro m (0 = automatic)
	species  []SpeciesProperties
	modes    []Mode
}

// configuration_payload is the raw JSON schema before validation.
type configuration_payload struct {
	NType    int                 `json:"n_type"`
	NSize    int                 `json:"n_size"`
	NSpecies int                 `json:"n_species"`
	NMode    int                 `json:"n_mode"`
	Pressure float64             `json:"pressure"`
	K        float64             `json:"grid_half_width"`
	Rtol     float64             `json:"conservation_rtol"`
	Rule     string              `json:"rule"`
	DMin     float64             `json:"d_min"`
	DMax     float64             `json:"d_max"`
	Species  []SpeciesProperties `json:"species"`
	Modes    []Mode              `json:"modes"`
}

const (
	RuleCDF       = "cdf"
	RuleTrapezoid = "trapezoid"
	RuleSimpson   = "simpson"
	RuleMidpoint  = "midpoint"
)

/*
Load an aerosol configuration from a JSON file.

    Args:
        file_path: path of the configuration JSON file

    Returns:
        validated Configuration

    Raises:
        ConfigError: any invariant of the parameter set is violated
*/
func load_configuration(file_path string) (*Configuration, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, fmt.Errorf("open configuration `%s`: %w", file_path, err)
	}
	defer file.Close()

	var pl configuration_payload
	if err := json.NewDecoder(file).Decode(&pl); err != nil {
		return nil, fmt.Errorf("decode configuration `%s`: %w", file_path, err)
	}

	return make_configuration(&pl)
}

/*
Validate a raw parameter payload and freeze it into a Configuration.

    Args:
        pl: raw parameter payload

    Returns:
        validated Configuration

    Raises:
        ConfigError: any invariant of the parameter set is violated
*/
func make_configuration(pl *configuration_payload) (*Configuration, error) {
	if pl.NType < 1 {
		return nil, &ConfigError{Field: "n_type", Value: float64(pl.NType), Msg: "number of aerosol types must be at least 1"}
	}
	if pl.NSize < 1 {
		return nil, &ConfigError{Field: "n_size", Value: float64(pl.NSize), Msg: "number of size bins must be at least 1"}
	}
	if pl.NSpecies < 1 {
		return nil, &ConfigError{Field: "n_species", Value: float64(pl.NSpecies), Msg: "number of species must be at least 1"}
	}
	if pl.NMode < 1 {
		return nil, &ConfigError{Field: "n_mode", Value: float64(pl.NMode), Msg: "number of modes must be at least 1"}
	}
	if pl.NSpecies != len(pl.Species) {
		return nil, &ConfigError{Field: "species", Value: float64(len(pl.Species)), Msg: fmt.Sprintf("species table length does not match n_species = %d", pl.NSpecies)}
	}
	if pl.NMode != len(pl.Modes) {
		return nil, &ConfigError{Field: "modes", Value: float64(len(pl.Modes)), Msg: fmt.Sprintf("mode table length does not match n_mode = %d", pl.NMode)}
	}
	if pl.Pressure <= 0.0 {
		return nil, &ConfigError{Field: "pressure", Value: pl.Pressure, Msg: "pressure must be positive"}
	}

	for i, sp := range pl.Species {
		if sp.Density <= 0.0 {
			return nil, &ConfigError{Field: fmt.Sprintf("species[%d].density", i), Value: sp.Density, Msg: "density must be positive"}
		}
		if sp.MolW <= 0.0 {
			return nil, &ConfigError{Field: fmt.Sprintf("species[%d].molecular_weight", i), Value: sp.MolW, Msg: "molecular weight must be positive"}
		}
		if sp.IonN < 1 {
			return nil, &ConfigError{Field: fmt.Sprintf("species[%d].ion_count", i), Value: float64(sp.IonN), Msg: "ion count must be at least 1"}
		}
		if sp.Kappa < 0.0 {
			return nil, &ConfigError{Field: fmt.Sprintf("species[%d].kappa", i), Value: sp.Kappa, Msg: "kappa must not be negative"}
		}
	}

	for j, md := range pl.Modes {
		if md.N <= 0.0 {
			return nil, &ConfigError{Field: fmt.Sprintf("modes[%d].n", j), Value: md.N, Msg: "number concentration must be positive"}
		}
		if md.Dm <= 0.0 {
			return nil, &ConfigError{Field: fmt.Sprintf("modes[%d].dm", j), Value: md.Dm, Msg: "mean diameter must be positive"}
		}
		if md.Sig < 1.0 {
			return nil, &ConfigError{Field: fmt.Sprintf("modes[%d].sig", j), Value: md.Sig, Msg: "geometric standard deviation must be at least 1"}
		}
		if md.Species < 0 || md.Species >= len(pl.Species) {
			return nil, &ConfigError{Field: fmt.Sprintf("modes[%d].species", j), Value: float64(md.Species), Msg: "species index out of range"}
		}
		sp := pl.Species[md.Species]
		if !_agree(md.Density1, sp.Density) {
			return nil, &ConfigError{Field: fmt.Sprintf("modes[%d].density1", j), Value: md.Density1, Msg: fmt.Sprintf("dominant species density does not match species[%d]", md.Species)}
		}
		if !_agree(md.MolW1, sp.MolW) {
			return nil, &ConfigError{Field: fmt.Sprintf("modes[%d].mol_w1", j), Value: md.MolW1, Msg: fmt.Sprintf("dominant species molecular weight does not match species[%d]", md.Species)}
		}
		if md.IonN1 != sp.IonN {
			return nil, &ConfigError{Field: fmt.Sprintf("modes[%d].ion_n1", j), Value: float64(md.IonN1), Msg: fmt.Sprintf("dominant species ion count does not match species[%d]", md.Species)}
		}
	}

	k := pl.K
	if k == 0.0 {
		k = 4.0
	}
	if k <= 0.0 {
		return nil, &ConfigError{Field: "grid_half_width", Value: pl.K, Msg: "grid half width must be positive"}
	}

	rtol := pl.Rtol
	if rtol == 0.0 {
		rtol = 1e-3
	}
	if rtol <= 0.0 {
		return nil, &ConfigError{Field: "conservation_rtol", Value: pl.Rtol, Msg: "conservation tolerance must be positive"}
	}

	rule := pl.Rule
	if rule == "" {
		rule = RuleCDF
	}
	switch rule {
	case RuleCDF, RuleTrapezoid, RuleSimpson, RuleMidpoint:
	default:
		return nil, &ConfigError{Field: "rule", Value: 0, Msg: fmt.Sprintf("unknown integration rule `%s`", rule)}
	}

	if pl.DMin != 0.0 || pl.DMax != 0.0 {
		if pl.DMin <= 0.0 || pl.DMax <= pl.DMin {
			return nil, &ConfigError{Field: "d_min", Value: pl.DMin, Msg: "explicit grid edges require 0 < d_min < d_max"}
		}
	}

	species := make([]SpeciesProperties, len(pl.Species))
	copy(species, pl.Species)
	modes := make([]Mode, len(pl.Modes))
	copy(modes, pl.Modes)

	return &Configuration{
		ty:       pl.NType,
		sz:       pl.NSize,
		sp:       pl.NSpecies,
		md:       pl.NMode,
		pressure: pl.Pressure,
		k:        k,
		rtol:     rtol,
		rule:     rule,
		d_min:    pl.DMin,
		d_max:    pl.DMax,
		species:  species,
		modes:    modes,
	}, nil
}

// Relative agreement check between a per-mode copy and the species table.
func _agree(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

/*
Load a species table from a CSV file.

    Args:
        file_path: path of the species CSV file
            (columns: name, density, molecular_weight, ion_count, kappa)

    Returns:
        species table

    Raises:
        ConfigError: a species property violates an invariant
*/
func load_species_csv(file_path string) ([]SpeciesProperties, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, fmt.Errorf("open species table `%s`: %w", file_path, err)
	}
	defer file.Close()

	var rows []*SpeciesProperties
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("decode species table `%s`: %w", file_path, err)
	}

	species := make([]SpeciesProperties, len(rows))
	for i, row := range rows {
		if row.Density <= 0.0 {
			return nil, &ConfigError{Field: fmt.Sprintf("species[%d].density", i), Value: row.Density, Msg: "density must be positive"}
		}
		if row.MolW <= 0.0 {
			return nil, &ConfigError{Field: fmt.Sprintf("species[%d].molecular_weight", i), Value: row.MolW, Msg: "molecular weight must be positive"}
		}
		if row.IonN < 1 {
			return nil, &ConfigError{Field: fmt.Sprintf("species[%d].ion_count", i), Value: float64(row.IonN), Msg: "ion count must be at least 1"}
		}
		species[i] = *row
	}
	return species, nil
}

/*
Reference configuration: one ammonium-sulfate-like species, one mode,
40 bins, 80000 Pa.

    Returns:
        validated Configuration
*/
func default_configuration() *Configuration {
	cfg, err := make_configuration(&configuration_payload{
		NType:    1,
		NSize:    40,
		NSpecies: 1,
		NMode:    1,
		Pressure: 80000.0,
		Species: []SpeciesProperties{
			{Name: "(NH4)2SO4", Density: 1.7418e3, MolW: 0.132, IonN: 3, Kappa: 0.6},
		},
		Modes: []Mode{
			{N: 200.0, Dm: 0.02, Sig: 2.0, Species: 0, Density1: 1.7418e3, MolW1: 0.132, IonN1: 3},
		},
	})
	if err != nil {
		panic(err)
	}
	return cfg
}
