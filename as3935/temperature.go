// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package as3935

import (
	"periph.io/x/conn/v3/physic"
)

const (
	// Scale of the die temperature register after discarding the two low
	// status bits.
	ambientScale = 0.03125 // °C/LSB
	// Scale of the thermopile voltage register.
	vObjectScale = 156.25e-9 // V/LSB
	// Voltage equivalent of the die temperature slope during thermal
	// transients.
	transientGain = 2.96e-4 // V per K/sample

	zeroCelsiusKelvin = 273.15
)

// Thermopile calibration constants from the element application note.
const (
	calS0   = 6.0e-14
	calA1   = 1.75e-3
	calA2   = -1.678e-5
	calB0   = -2.94e-5
	calB1   = -5.7e-7
	calB2   = 4.63e-9
	calC2   = 13.4
	calTRef = 298.15
)

// calculateTemperature computes the object temperature in Celsius from the
// die temperature tDie in Kelvin and the thermopile voltage vObj in Volt.
//
// The sensitivity S and offset voltage Vos are second order polynomials in
// the die temperature's excursion from the 298.15K reference; the corrected
// thermopile voltage feeds the radiative transfer balance
// Tobj⁴ = tDie⁴ + fObj/S.
func calculateTemperature(m MathProvider, tDie, vObj float64) float64 {
	s := calS0 * (1.0 + calA1*(tDie-calTRef) + calA2*m.Pow(tDie-calTRef, 2))
	vos := calB0 + calB1*(tDie-calTRef) + calB2*m.Pow(tDie-calTRef, 2)
	fObj := (vObj - vos) + calC2*m.Pow(vObj-vos, 2)
	tObj := m.Sqrt(m.Sqrt(m.Pow(tDie, 4) + fObj/s))
	return tObj - zeroCelsiusKelvin
}

// transientSlope estimates the die temperature rate of change from the four
// sample history, in Kelvin per sample. A cold history (element just powered
// up, h[0] still zero) yields no slope.
func transientSlope(h *[4]float64) float64 {
	if h[0] == 0 {
		return 0
	}
	return -0.3*h[0] - 0.1*h[1] + 0.1*h[2] + 0.3*h[3]
}

// ambientCelsius reads the die temperature register. The two low bits are
// status bits and are discarded with an arithmetic shift.
func (dev *Dev) ambientCelsius() (float64, error) {
	raw, err := dev.readReg(_REGISTER_TAMBIENT)
	if err != nil {
		return 0, err
	}
	return float64(int16(raw)>>2) * ambientScale, nil
}

// objectVoltage reads the thermopile voltage register.
func (dev *Dev) objectVoltage() (float64, error) {
	raw, err := dev.readReg(_REGISTER_VOBJECT)
	if err != nil {
		return 0, err
	}
	return float64(int16(raw)) * vObjectScale, nil
}

func (dev *Dev) objectCelsius() (float64, error) {
	ambient, err := dev.ambientCelsius()
	if err != nil {
		return 0, err
	}
	vObj, err := dev.objectVoltage()
	if err != nil {
		return 0, err
	}
	return calculateTemperature(dev.math, ambient+zeroCelsiusKelvin, vObj), nil
}

func celsiusToTemperature(celsius float64) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(celsius*float64(physic.Celsius))
}

// AmbientTemperature returns the die temperature.
func (dev *Dev) AmbientTemperature() (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	celsius, err := dev.ambientCelsius()
	if err != nil {
		return 0, err
	}
	return celsiusToTemperature(celsius), nil
}

// ObjectTemperature returns the temperature of the object in the element's
// field of view, derived from the die temperature and the thermopile
// voltage.
func (dev *Dev) ObjectTemperature() (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	celsius, err := dev.objectCelsius()
	if err != nil {
		return 0, err
	}
	return celsiusToTemperature(celsius), nil
}

// ObjectTemperatureWithTransientCorrection returns the object temperature
// with a correction for thermal transients. The thermopile settles faster
// than the die temperature sensor, so during rapid ambient changes the
// uncorrected reading lags; the die temperature slope estimated from the
// history compensates for it.
//
// history is a caller owned buffer of the last four die temperature samples
// in Kelvin, oldest first. It is shifted in place on every call: the oldest
// sample is dropped and the sample taken by this call appended. Start with a
// zeroed buffer; no correction is applied until it has filled. Concurrent
// calls sharing a buffer must be serialized by the caller.
func (dev *Dev) ObjectTemperatureWithTransientCorrection(history *[4]float64) (physic.Temperature, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	raw, err := dev.readReg(_REGISTER_VOBJECT)
	if err != nil {
		return 0, err
	}
	ambient, err := dev.ambientCelsius()
	if err != nil {
		return 0, err
	}
	history[0] = history[1]
	history[1] = history[2]
	history[2] = history[3]
	history[3] = ambient + zeroCelsiusKelvin
	vObj := float64(int16(raw))*vObjectScale + transientSlope(history)*transientGain
	return celsiusToTemperature(calculateTemperature(dev.math, history[3], vObj)), nil
}
