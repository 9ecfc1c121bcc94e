// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package fpmath provides power and square root primitives for the as3935
// object temperature calculation without depending on the math library's
// transcendental functions. It mirrors the element vendor's fixed point
// build: powers by repeated multiplication and square roots by Newton
// iteration, so it only needs multiply, divide and the raw bit pattern of
// the operand.
package fpmath

import "math"

// Provider implements as3935.MathProvider.
type Provider struct{}

// Pow returns x raised to the non-negative integer power n by repeated
// multiplication.
func (Provider) Pow(x float64, n int) float64 {
	result := 1.0
	for ; n > 0; n-- {
		result *= x
	}
	return result
}

// Sqrt returns the square root of x by Newton iteration. The initial
// estimate halves the binary exponent, which lands within a few percent of
// the root; five iterations refine it well past the accuracy the
// temperature calculation needs. Non-positive operands return 0, matching
// the fixed point library's saturating behavior.
func (Provider) Sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	// (bits >> 1) + half the exponent bias.
	estimate := math.Float64frombits(math.Float64bits(x)>>1 + 0x1FF8000000000000)
	for i := 0; i < 5; i++ {
		estimate = 0.5 * (estimate + x/estimate)
	}
	return estimate
}
