package main

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Modes with ln(sig) below this are treated as monodisperse.
const sig_epsilon = 1e-6

/*
SizeBin is one discrete bin of the size-resolved aerosol population.

    Attributes:
        d_lower: lower bin edge, micro m
        d_center: geometric center diameter of the bin, micro m
        d_upper: upper bin edge, micro m
        d_dry: representative dry diameter, m
        d_wet: equilibrium wet diameter at the ambient state, micro m
        n: number concentration, 1/cm3
        m: mass concentration, kg/m3
        s: surface area concentration, micro m2/cm3
*/
type SizeBin struct {
	d_lower  float64
	d_center float64
	d_upper  float64
	d_dry    float64
	d_wet    float64
	n        float64
	m        float64
	s        float64
}

/*
Calculates the number concentration in a given size bin from a spectral size
distribution.

    Args:
        pdf: number density of the distribution, 1/cm3 / micro m
        d_min: lower bin edge, micro m
        d_max: upper bin edge, micro m
        rule: integration rule (trapezoid, simpson or midpoint)

    Returns:
        number concentration in the bin, 1/cm3
*/
func dist_to_conc(pdf func(float64) float64, d_min float64, d_max float64, rule string) float64 {
	width := d_max - d_min
	switch rule {
	case RuleTrapezoid:
		return width * 0.5 * (pdf(d_max) + pdf(d_min))
	case RuleSimpson:
		return (width / 6.0) * (pdf(d_max) + pdf(d_min) + 4.0*pdf(0.5*(d_max+d_min)))
	default:
		return width * pdf(0.5*(d_max+d_min))
	}
}

/*
Diameter range of the bin grid. Without explicit edges the grid spans
dm/sig^k to dm*sig^k across all modes; a near-monodisperse mode still gets a
finite span.

    Args:
        cfg: aerosol configuration

    Returns:
        the following tuple
            (1) lower grid edge, micro m
            (2) upper grid edge, micro m
*/
func _grid_range(cfg *Configuration) (float64, float64) {
	if cfg.d_min != 0.0 || cfg.d_max != 0.0 {
		return cfg.d_min, cfg.d_max
	}

	d_lo := math.Inf(1)
	d_hi := math.Inf(-1)
	for _, md := range cfg.modes {
		sig_b := math.Max(md.Sig, 1.2)
		f := math.Pow(sig_b, cfg.k)
		d_lo = math.Min(d_lo, md.Dm/f)
		d_hi = math.Max(d_hi, md.Dm*f)
	}
	return d_lo, d_hi
}

/*
Partitions the continuous log-normal distribution(s) of the configuration
into sz discrete size bins and computes the per-bin quantities under the
given ambient state.

Pure function of (cfg, ambient); safe to call concurrently as long as the
configuration is not mutated.

    Args:
        cfg: aerosol configuration
        ambient: ambient state

    Returns:
        size bins ordered by increasing diameter, [sz]

    Raises:
        DiscretizationError: sz is not positive, or the integrated number
            concentration of a mode deviates from its total by more than the
            configured relative tolerance (grid range or resolution problem)
*/
func discretize(cfg *Configuration, ambient *AmbientState) ([]SizeBin, error) {
	sz := cfg.sz
	if sz <= 0 {
		return nil, &DiscretizationError{Mode: -1, Value: float64(sz), Msg: "bin count must be positive"}
	}

	// bin edges, log spaced, [sz+1]
	d_lo, d_hi := _grid_range(cfg)
	edges := make([]float64, sz+1)
	floats.LogSpan(edges, d_lo, d_hi)

	// geometric center diameters, [sz]
	centers := make([]float64, sz)
	for i := 0; i < sz; i++ {
		centers[i] = math.Sqrt(edges[i] * edges[i+1])
	}

	// per-mode number concentration, 1/cm3, [sz, md]
	n_ij := mat.NewDense(sz, len(cfg.modes), nil)
	for j, md := range cfg.modes {
		if math.Log(md.Sig) < sig_epsilon {
			// Monodisperse limit: the whole mode collapses into the bin
			// nearest dm.
			n_ij.Set(_nearest_bin(centers, md.Dm), j, md.N)
			continue
		}

		dist := NewLognorm(md.Dm, md.Sig, md.N)
		var sum float64
		for i := 0; i < sz; i++ {
			var n float64
			if cfg.rule == RuleCDF {
				n = dist.cdf(edges[i+1]) - dist.cdf(edges[i])
			} else {
				n = dist_to_conc(dist.pdf, edges[i], edges[i+1], cfg.rule)
			}
			n_ij.Set(i, j, n)
			sum += n
		}

		if math.Abs(sum-md.N)/md.N > cfg.rtol {
			return nil, &DiscretizationError{Mode: j, Value: sum, Msg: "integrated number concentration violates conservation"}
		}
	}

	bins := make([]SizeBin, sz)
	for i := 0; i < sz; i++ {
		d_c := centers[i] // micro m
		d_m := d_c * 1e-6 // m

		// number concentration summed over modes, 1/cm3, plus the
		// mode-resolved mass and the number weighted kappa of the bin
		var n, m, nk float64
		for j, md := range cfg.modes {
			n_j := n_ij.At(i, j)
			n += n_j
			// 1/cm3 -> 1/m3, D in m, mass in kg/m3
			m += n_j * 1e6 * md.Density1 * get_pi() / 6.0 * d_m * d_m * d_m
			nk += n_j * cfg.species[md.Species].Kappa
		}

		d_wet := d_c
		if ambient.rh > 0.0 && n > 0.0 {
			kappa := nk / n
			d_wet_m, err := equilibrium_wet_diameter(d_m, kappa, ambient.temp, ambient.rh)
			if err != nil {
				return nil, err
			}
			d_wet = d_wet_m * 1e6
		}

		bins[i] = SizeBin{
			d_lower:  edges[i],
			d_center: d_c,
			d_upper:  edges[i+1],
			d_dry:    d_m,
			d_wet:    d_wet,
			n:        n,
			m:        m,
			s:        n * get_pi() * d_c * d_c,
		}
	}

	return bins, nil
}

/*
Wraps caller-supplied monodisperse size classes (already discretized) into
size bins, in the manner of the dict-style distribution of the parcel model.
Edges are set to +-10 % of each diameter; mass uses the first species of the
configuration.

    Args:
        diameters: representative diameters, micro m, [n]
        numbers: number concentrations, 1/cm3, [n]
        cfg: aerosol configuration

    Returns:
        size bins, [n]

    Raises:
        DiscretizationError: empty or mismatched inputs, or a non-positive
            diameter or negative number concentration
*/
func discretize_monodisperse(diameters []float64, numbers []float64, cfg *Configuration) ([]SizeBin, error) {
	if len(diameters) == 0 || len(diameters) != len(numbers) {
		return nil, &DiscretizationError{Mode: -1, Value: float64(len(diameters)), Msg: "diameters and numbers must be non-empty and of equal length"}
	}

	rho := cfg.species[0].Density
	bins := make([]SizeBin, len(diameters))
	for i, d_c := range diameters {
		if d_c <= 0.0 {
			return nil, &DiscretizationError{Mode: -1, Value: d_c, Msg: "diameter must be positive"}
		}
		if numbers[i] < 0.0 {
			return nil, &DiscretizationError{Mode: -1, Value: numbers[i], Msg: "number concentration must not be negative"}
		}
		d_m := d_c * 1e-6
		bins[i] = SizeBin{
			d_lower:  d_c * 0.9,
			d_center: d_c,
			d_upper:  d_c * 1.1,
			d_dry:    d_m,
			d_wet:    d_c,
			n:        numbers[i],
			m:        numbers[i] * 1e6 * rho * get_pi() / 6.0 * d_m * d_m * d_m,
			s:        numbers[i] * get_pi() * d_c * d_c,
		}
	}
	return bins, nil
}

// Index of the center diameter nearest d on the logarithmic axis.
func _nearest_bin(centers []float64, d float64) int {
	best := 0
	best_dist := math.Inf(1)
	for i, c := range centers {
		dist := math.Abs(math.Log(c) - math.Log(d))
		if dist < best_dist {
			best = i
			best_dist = dist
		}
	}
	return best
}
