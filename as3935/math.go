// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package as3935

import "math"

// MathProvider supplies the power and square root primitives the object
// temperature calculation is built on. The calibration equation only needs
// small non-negative integer powers, which keeps alternative providers
// simple.
//
// Providers must agree on the equation's operating range within roughly
// 1e-5 relative error; see fpmath for a provider usable on hosts without
// hardware floating point.
type MathProvider interface {
	// Pow returns x raised to the non-negative integer power n.
	Pow(x float64, n int) float64
	// Sqrt returns the square root of x.
	Sqrt(x float64) float64
}

// FloatMath computes through the standard math package. It is the default
// provider.
type FloatMath struct{}

func (FloatMath) Pow(x float64, n int) float64 {
	return math.Pow(x, float64(n))
}

func (FloatMath) Sqrt(x float64) float64 {
	return math.Sqrt(x)
}

var _ MathProvider = FloatMath{}
