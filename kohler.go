package main

import (
	"fmt"
	"math"
)

/*
Equilibrium saturation ratio over an aqueous droplet of dry diameter d_dry
grown to wet diameter d, after kappa-Koehler theory
(Petters and Kreidenweis, 2007).

    Args:
        d: wet diameter, m
        d_dry: dry diameter, m
        kappa: hygroscopicity parameter, -
        a: Kelvin coefficient 4 sigma_w Mw / (R T rho_w), m

    Returns:
        equilibrium saturation ratio, -
*/
func _kohler_s(d float64, d_dry float64, kappa float64, a float64) float64 {
	d3 := d * d * d
	dd3 := d_dry * d_dry * d_dry
	return (d3 - dd3) / (d3 - dd3*(1.0-kappa)) * math.Exp(a/d)
}

/*
Equilibrium wet diameter of a particle at the given sub-saturated ambient
state, solved from the kappa-Koehler equation by bisection.

The bracket upper bound is the Kelvin-free growth diameter
d_dry * (1 + kappa rh / (1 - rh))^(1/3); the Kelvin term only shrinks the
equilibrium size, so the root lies below it.

    Args:
        d_dry: dry diameter, m
        kappa: hygroscopicity parameter, -
        temp: air temperature, K
        rh: relative humidity, - (0 <= rh < 1)

    Returns:
        equilibrium wet diameter, m
*/
func equilibrium_wet_diameter(d_dry float64, kappa float64, temp float64, rh float64) (float64, error) {
	if rh <= 0.0 || kappa <= 0.0 {
		return d_dry, nil
	}
	if rh >= 1.0 {
		return 0, fmt.Errorf("no equilibrium size at saturation (rh = %f)", rh)
	}

	// Kelvin coefficient, m
	a := 4.0 * get_sigma_w() * get_mw_w() / (get_r() * temp * get_rho_w())

	f := func(d float64) float64 {
		return _kohler_s(d, d_dry, kappa, a) - rh
	}

	// Bisection method
	lo := d_dry * (1.0 + 1e-9)
	hi := d_dry * math.Cbrt(1.0+kappa*rh/(1.0-rh)) * (1.0 + 1e-9)
	if f(hi) < 0 {
		// Kelvin-dominated: the particle barely grows
		return d_dry, nil
	}

	tol := 1e-12
	maxIter := 200
	var c float64
	for i := 0; i < maxIter; i++ {
		c = (lo + hi) / 2

		if f(c) == 0 || (hi-lo)/2 < tol*d_dry {
			return c, nil
		}

		if f(c)*f(lo) < 0 {
			hi = c
		} else {
			lo = c
		}
	}
	return 0, fmt.Errorf("failed to find equilibrium wet diameter within %d iterations", maxIter)
}
