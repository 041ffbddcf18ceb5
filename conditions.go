package main

/*
AmbientState is the ambient context a discretization is evaluated under.
Temperature may vary between calls; pressure is fixed by the configuration;
relative humidity drives the equilibrium wet diameter and may be zero, in
which case the wet diameter equals the dry diameter.
*/
type AmbientState struct {
	temp float64 // air temperature, K
	rh   float64 // relative humidity, - (0 <= rh < 1)
}

/*
Args:
    temp: air temperature, K
    rh: relative humidity, - (0 <= rh < 1)

Returns:
    AmbientState

Raises:
    ConfigError: temperature not positive or humidity outside [0, 1)
*/
func NewAmbientState(temp float64, rh float64) (*AmbientState, error) {
	if temp <= 0.0 {
		return nil, &ConfigError{Field: "temperature", Value: temp, Msg: "temperature must be positive"}
	}
	if rh < 0.0 || rh >= 1.0 {
		return nil, &ConfigError{Field: "relative_humidity", Value: rh, Msg: "relative humidity must be in [0, 1)"}
	}
	return &AmbientState{temp: temp, rh: rh}, nil
}

// Reference ambient state of the bundled configuration (283.15 K, dry).
func default_ambient_state() *AmbientState {
	return &AmbientState{temp: 283.15, rh: 0.0}
}
