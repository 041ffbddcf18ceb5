package main

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

/*
Lognorm is a single log-normal aerosol size distribution.

    Attributes:
        mu: geometric mean diameter, micro m
        sigma: geometric standard deviation, -
        n: total number concentration, 1/cm3

    Notes:
        f(D) = N / (sqrt(2 pi) ln(sigma) D) * exp(-(ln(D) - ln(mu))^2 / (2 ln(sigma)^2))
*/
type Lognorm struct {
	mu    float64
	sigma float64
	n     float64
	dist  distuv.LogNormal
}

func NewLognorm(mu float64, sigma float64, n float64) *Lognorm {
	return &Lognorm{
		mu:    mu,
		sigma: sigma,
		n:     n,
		dist: distuv.LogNormal{
			Mu:    math.Log(mu),
			Sigma: math.Log(sigma),
		},
	}
}

/*
Probability density of the distribution, scaled by the total number
concentration.

    Args:
        d: particle diameter, micro m

    Returns:
        number density, 1/cm3 / micro m
*/
func (self *Lognorm) pdf(d float64) float64 {
	return self.n * self.dist.Prob(d)
}

/*
Cumulative number concentration below diameter d.

    Args:
        d: particle diameter, micro m

    Returns:
        cumulative number concentration, 1/cm3
*/
func (self *Lognorm) cdf(d float64) float64 {
	return self.n * self.dist.CDF(d)
}

func (self *Lognorm) total_n() float64 {
	return self.n
}

/*
MultiModeLognorm is the superposition of several log-normal modes. The pdf
and cdf are the sums of the per-mode pdfs and cdfs.
*/
type MultiModeLognorm struct {
	modes []*Lognorm
}

func NewMultiModeLognorm(modes []*Lognorm) *MultiModeLognorm {
	return &MultiModeLognorm{modes: modes}
}

func (self *MultiModeLognorm) pdf(d float64) float64 {
	var sum float64
	for _, m := range self.modes {
		sum += m.pdf(d)
	}
	return sum
}

func (self *MultiModeLognorm) cdf(d float64) float64 {
	var sum float64
	for _, m := range self.modes {
		sum += m.cdf(d)
	}
	return sum
}

func (self *MultiModeLognorm) total_n() float64 {
	var sum float64
	for _, m := range self.modes {
		sum += m.total_n()
	}
	return sum
}
