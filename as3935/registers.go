// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package as3935

// BaseAddress is the lowest I²C address the element responds to. The bus
// address of an instance is BaseAddress plus the id selected by the address
// pins.
const BaseAddress uint16 = 0x40

// Register addresses. All registers are 16 bit, transferred big-endian.
const (
	_REGISTER_VOBJECT     byte = 0x00 // Thermopile voltage (R)
	_REGISTER_TAMBIENT    byte = 0x01 // Die temperature (R)
	_REGISTER_CONFIG      byte = 0x02 // Configuration (R/W)
	_REGISTER_PRESET_DEF  byte = 0x3C // Preset default, direct command only (W)
	_REGISTER_MFG_ID      byte = 0xFE // Manufacturer ID (R)
	_REGISTER_DEVICE_ID   byte = 0xFF // Device ID (R)
)

// Writing this value to the preset default register restores the power-up
// configuration.
const _DIRECT_CMD uint16 = 0x0096

// Bit fields within the configuration register.
const (
	_CONFIG_MOD_MASK  uint16 = 0x7000 // Operating mode
	_CONFIG_CR_MASK   uint16 = 0x0E00 // Conversion rate
	_CONFIG_EN_BIT    uint16 = 0x0100 // Data ready pin enable
	_CONFIG_DRDY_BIT  uint16 = 0x0080 // Data ready status
)

// Mode is the element's operating mode. Values are pre-shifted into register
// position.
type Mode uint16

const (
	// ModePowerDown stops all conversions.
	ModePowerDown Mode = 0x0000
	// ModeContinuous converts die temperature and thermopile voltage
	// continuously at the configured conversion rate.
	ModeContinuous Mode = 0x7000
)

// ConversionRate is the element's sampling rate. Values are pre-shifted into
// register position. Slower rates average more samples per conversion.
type ConversionRate uint16

const (
	RateFourHertz    ConversionRate = 0x0000
	RateTwoHertz     ConversionRate = 0x0200
	RateOneHertz     ConversionRate = 0x0400
	RateHalfHertz    ConversionRate = 0x0600
	RateQuarterHertz ConversionRate = 0x0800
)
