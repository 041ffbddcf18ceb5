package main

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference scenario: 40 bins, one (NH4)2SO4-like mode with N = 200 1/cm3,
// dm = 0.02 micro m, sig = 2.0 at 283.15 K, 80000 Pa.
func Test_discretize_reference_scenario(t *testing.T) {
	cfg := default_configuration()
	bins, err := discretize(cfg, default_ambient_state())
	require.NoError(t, err)
	require.Len(t, bins, 40)

	var n_sum float64
	for _, b := range bins {
		n_sum += b.n
	}
	assert.InDelta(t, 200.0, n_sum, 0.2)

	// the peak bin sits at the geometric mean diameter
	peak := bins[0]
	for _, b := range bins {
		if b.n > peak.n {
			peak = b
		}
	}
	assert.Greater(t, peak.d_center, 0.02/1.5)
	assert.Less(t, peak.d_center, 0.02*1.5)
}

func Test_discretize_monotonic_and_non_negative(t *testing.T) {
	cfg := default_configuration()
	bins, err := discretize(cfg, default_ambient_state())
	require.NoError(t, err)

	for i, b := range bins {
		assert.Less(t, b.d_lower, b.d_center, "bin %d", i)
		assert.Less(t, b.d_center, b.d_upper, "bin %d", i)
		if i > 0 {
			assert.Greater(t, b.d_center, bins[i-1].d_center, "bin %d", i)
			assert.Equal(t, bins[i-1].d_upper, b.d_lower, "bin %d", i)
		}
		assert.GreaterOrEqual(t, b.n, 0.0, "bin %d", i)
		assert.GreaterOrEqual(t, b.m, 0.0, "bin %d", i)
		assert.GreaterOrEqual(t, b.s, 0.0, "bin %d", i)
	}
}

func Test_discretize_idempotent(t *testing.T) {
	cfg := default_configuration()
	ambient := default_ambient_state()

	bins1, err := discretize(cfg, ambient)
	require.NoError(t, err)
	bins2, err := discretize(cfg, ambient)
	require.NoError(t, err)

	assert.Equal(t, bins1, bins2)
}

// The discretized third moment has to reproduce the analytic mass of the
// mode, N rho pi/6 dm^3 exp(4.5 ln(sig)^2), up to grid truncation.
func Test_discretize_total_mass(t *testing.T) {
	cfg := default_configuration()
	bins, err := discretize(cfg, default_ambient_state())
	require.NoError(t, err)

	var m_sum float64
	for _, b := range bins {
		m_sum += b.m
	}

	md := cfg.modes[0]
	ln_sig := math.Log(md.Sig)
	dm_m := md.Dm * 1e-6
	m_exact := md.N * 1e6 * md.Density1 * math.Pi / 6.0 *
		dm_m * dm_m * dm_m * math.Exp(4.5*ln_sig*ln_sig)

	// the +-4 sigma grid truncates ~3 % of the mass distribution
	assert.InEpsilon(t, m_exact, m_sum, 0.08)
}

// sig -> 1 is a defined limit, not a division failure: everything collapses
// into the bin nearest dm.
func Test_discretize_degenerate_mode(t *testing.T) {
	pl := _reference_payload()
	pl.Modes[0].Sig = 1.0 + 1e-7
	cfg, err := make_configuration(pl)
	require.NoError(t, err)

	bins, err := discretize(cfg, default_ambient_state())
	require.NoError(t, err)

	var n_sum, n_peak float64
	peak := bins[0]
	for _, b := range bins {
		n_sum += b.n
		if b.n > n_peak {
			n_peak = b.n
			peak = b
		}
	}
	assert.InEpsilon(t, 200.0, n_sum, 1e-12)
	assert.GreaterOrEqual(t, n_peak/n_sum, 0.99)
	assert.Greater(t, peak.d_center, 0.02/1.5)
	assert.Less(t, peak.d_center, 0.02*1.5)
}

// Two single-mode runs on a shared explicit grid, summed bin by bin, have to
// equal one two-mode run.
func Test_discretize_mode_merge(t *testing.T) {
	species := []SpeciesProperties{
		{Name: "(NH4)2SO4", Density: 1.7418e3, MolW: 0.132, IonN: 3, Kappa: 0.6},
	}
	mode_a := Mode{N: 200.0, Dm: 0.02, Sig: 2.0, Species: 0, Density1: 1.7418e3, MolW1: 0.132, IonN1: 3}
	mode_b := Mode{N: 100.0, Dm: 0.1, Sig: 1.8, Species: 0, Density1: 1.7418e3, MolW1: 0.132, IonN1: 3}

	payload := func(modes ...Mode) *configuration_payload {
		return &configuration_payload{
			NType:    1,
			NSize:    40,
			NSpecies: 1,
			NMode:    len(modes),
			Pressure: 80000.0,
			DMin:     0.001,
			DMax:     1.0,
			Species:  species,
			Modes:    modes,
		}
	}

	ambient := default_ambient_state()

	cfg_a, err := make_configuration(payload(mode_a))
	require.NoError(t, err)
	bins_a, err := discretize(cfg_a, ambient)
	require.NoError(t, err)

	cfg_b, err := make_configuration(payload(mode_b))
	require.NoError(t, err)
	bins_b, err := discretize(cfg_b, ambient)
	require.NoError(t, err)

	cfg_ab, err := make_configuration(payload(mode_a, mode_b))
	require.NoError(t, err)
	bins_ab, err := discretize(cfg_ab, ambient)
	require.NoError(t, err)

	for i := range bins_ab {
		assert.Equal(t, bins_a[i].d_center, bins_ab[i].d_center, "bin %d", i)
		assert.InDelta(t, bins_a[i].n+bins_b[i].n, bins_ab[i].n, 1e-9, "number in bin %d", i)
		assert.InDelta(t, bins_a[i].m+bins_b[i].m, bins_ab[i].m, 1e-18, "mass in bin %d", i)
	}

	var n_sum float64
	for _, b := range bins_ab {
		n_sum += b.n
	}
	assert.InDelta(t, 300.0, n_sum, 0.3)
}

func Test_discretize_zero_bins(t *testing.T) {
	cfg := *default_configuration()
	cfg.sz = 0

	_, err := discretize(&cfg, default_ambient_state())
	require.Error(t, err)

	var derr *DiscretizationError
	assert.True(t, errors.As(err, &derr), "expected a DiscretizationError, got %v", err)
}

// A grid spanning only +-2 geometric standard deviations leaves ~4.5 % of
// the population outside and has to be rejected.
func Test_discretize_conservation_violation(t *testing.T) {
	pl := _reference_payload()
	pl.K = 2.0
	cfg, err := make_configuration(pl)
	require.NoError(t, err)

	_, err = discretize(cfg, default_ambient_state())
	require.Error(t, err)

	var derr *DiscretizationError
	assert.True(t, errors.As(err, &derr), "expected a DiscretizationError, got %v", err)
}

// The quadrature rules converge to the analytic count once the grid is fine
// enough.
func Test_discretize_quadrature_rules(t *testing.T) {
	for _, rule := range []string{RuleTrapezoid, RuleSimpson, RuleMidpoint} {
		t.Run(rule, func(t *testing.T) {
			pl := _reference_payload()
			pl.NSize = 500
			pl.Rule = rule
			pl.Rtol = 5e-3
			cfg, err := make_configuration(pl)
			require.NoError(t, err)

			bins, err := discretize(cfg, default_ambient_state())
			require.NoError(t, err)

			var n_sum float64
			for _, b := range bins {
				n_sum += b.n
			}
			assert.InDelta(t, 200.0, n_sum, 1.0)
		})
	}
}

func Test_discretize_wet_diameter(t *testing.T) {
	cfg := default_configuration()
	ambient, err := NewAmbientState(283.15, 0.8)
	require.NoError(t, err)

	bins, err := discretize(cfg, ambient)
	require.NoError(t, err)

	for i, b := range bins {
		assert.GreaterOrEqual(t, b.d_wet, b.d_center, "bin %d", i)
	}

	// hygroscopic growth at 80 % humidity is well above a few percent
	mid := bins[len(bins)/2]
	assert.Greater(t, mid.d_wet/mid.d_center, 1.2)
}

func Test_discretize_monodisperse(t *testing.T) {
	cfg := default_configuration()

	bins, err := discretize_monodisperse([]float64{0.5}, []float64{1000.0}, cfg)
	require.NoError(t, err)
	require.Len(t, bins, 1)

	assert.Equal(t, 0.5, bins[0].d_center)
	assert.Equal(t, 1000.0, bins[0].n)

	// 1000 1/cm3 of 0.5 micro m spheres at 1741.8 kg/m3
	d_m := 0.5e-6
	m_exact := 1000.0 * 1e6 * 1741.8 * math.Pi / 6.0 * d_m * d_m * d_m
	assert.InEpsilon(t, m_exact, bins[0].m, 1e-12)

	_, err = discretize_monodisperse([]float64{0.5}, []float64{1.0, 2.0}, cfg)
	assert.Error(t, err)

	_, err = discretize_monodisperse([]float64{-0.5}, []float64{1.0}, cfg)
	assert.Error(t, err)
}
