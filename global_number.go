package main

import "math"

// gas constant, J/mol K
func get_r() float64 {
	return 8.314
}

// zero Celsius, K
func get_t_zero() float64 {
	return 273.15
}

// standard atmosphere, Pa
func get_p_atm() float64 {
	return 1.01325e5
}

func get_pi() float64 {
	return math.Pi
}

// density of water, kg/m3
func get_rho_w() float64 {
	return 1000.0
}

// molecular weight of water, kg/mol
func get_mw_w() float64 {
	return 0.018
}

// surface tension of water at ~283 K, J/m2
func get_sigma_w() float64 {
	return 0.072
}
