// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package as3935 provides a driver for the Anaren AIR AS3935 sensor element
// over an I²C bus. The element pairs an infrared thermopile with an on-die
// temperature sensor; object temperature is computed from the thermopile
// voltage and the die temperature using the calibration equation from the
// datasheet.
//
// Ambient (die) resolution: 0.03125°C
//
// Object voltage resolution: 156.25nV
//
// Up to eight elements can share a bus; the instance id selected by the
// address pins is added to the base I²C address.
//
// For detailed information, refer to the AS3935 datasheet and the element
// application note.
package as3935
