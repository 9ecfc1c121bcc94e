// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package as3935

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Dev represents an AS3935 sensor element.
type Dev struct {
	d        *i2c.Dev
	mu       sync.Mutex
	math     MathProvider
	shutdown chan struct{}
}

// Opts represents configurable options for the element.
type Opts struct {
	Mode Mode
	Rate ConversionRate
	// DataReadyEnable drives the DRDY pin when a conversion completes.
	DataReadyEnable bool
	// Math selects the provider used for the object temperature
	// calculation. Leave nil for FloatMath. Hosts without hardware
	// floating point can use fpmath.Provider.
	Math MathProvider
}

// DefaultOpts holds the element's power-up configuration.
var DefaultOpts = Opts{
	Mode: ModeContinuous,
	Rate: RateOneHertz,
}

// The minimum resolvable die temperature step.
const _DEGREES_RESOLUTION physic.Temperature = 31_250 * physic.MicroKelvin

// NewI2C returns a new AS3935 element using the specified bus and instance
// id. The id is the value selected by the element's address pins; the bus
// address used is BaseAddress+id. If opts is nil, the power-up defaults are
// applied.
func NewI2C(b i2c.Bus, id uint8, opts *Opts) (*Dev, error) {
	if id > 7 {
		return nil, errors.New("as3935: instance id out of range")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	m := opts.Math
	if m == nil {
		m = FloatMath{}
	}
	dev := &Dev{d: &i2c.Dev{Bus: b, Addr: BaseAddress + uint16(id)}, math: m}
	return dev, dev.start(opts)
}

// start applies the configuration in a single read-modify-write so the
// status bit is left untouched.
func (dev *Dev) start(opts *Opts) error {
	config, err := dev.readReg(_REGISTER_CONFIG)
	if err != nil {
		return err
	}
	config &^= _CONFIG_MOD_MASK | _CONFIG_CR_MASK | _CONFIG_EN_BIT
	config |= uint16(opts.Mode) | uint16(opts.Rate)
	if opts.DataReadyEnable {
		config |= _CONFIG_EN_BIT
	}
	return dev.writeReg(_REGISTER_CONFIG, config)
}

// writeReg writes a 16 bit register as a single transaction of the register
// address followed by the value, big-endian.
func (dev *Dev) writeReg(addr byte, data uint16) error {
	w := []byte{addr, byte(data >> 8), byte(data)}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("as3935: write register 0x%02x: %w", addr, err)
	}
	return nil
}

// readReg selects a register with a 1 byte write and reads its 16 bit value
// back big-endian.
func (dev *Dev) readReg(addr byte) (uint16, error) {
	r := make([]byte, 2)
	if err := dev.d.Tx([]byte{addr}, r); err != nil {
		return 0, fmt.Errorf("as3935: read register 0x%02x: %w", addr, err)
	}
	return uint16(r[0])<<8 | uint16(r[1]), nil
}

// updateConfig clears mask in the configuration register and ORs in value.
func (dev *Dev) updateConfig(mask, value uint16) error {
	config, err := dev.readReg(_REGISTER_CONFIG)
	if err != nil {
		return err
	}
	config &^= mask
	config |= value
	return dev.writeReg(_REGISTER_CONFIG, config)
}

// SetMode sets the element's operating mode.
func (dev *Dev) SetMode(mode Mode) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.updateConfig(_CONFIG_MOD_MASK, uint16(mode))
}

// Mode returns the element's current operating mode.
func (dev *Dev) Mode() (Mode, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	config, err := dev.readReg(_REGISTER_CONFIG)
	return Mode(config & _CONFIG_MOD_MASK), err
}

// SetConversionRate sets the element's conversion rate.
func (dev *Dev) SetConversionRate(rate ConversionRate) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.updateConfig(_CONFIG_CR_MASK, uint16(rate))
}

// ConversionRate returns the element's current conversion rate.
func (dev *Dev) ConversionRate() (ConversionRate, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	config, err := dev.readReg(_REGISTER_CONFIG)
	return ConversionRate(config & _CONFIG_CR_MASK), err
}

// SetDataReadyEnable enables or disables the DRDY pin output.
func (dev *Dev) SetDataReadyEnable(enable bool) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	var value uint16
	if enable {
		value = _CONFIG_EN_BIT
	}
	return dev.updateConfig(_CONFIG_EN_BIT, value)
}

// DataReadyEnabled returns whether the DRDY pin output is enabled.
func (dev *Dev) DataReadyEnabled() (bool, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	config, err := dev.readReg(_REGISTER_CONFIG)
	return config&_CONFIG_EN_BIT != 0, err
}

// DataReady returns whether a conversion has completed since the status bit
// was last cleared.
func (dev *Dev) DataReady() (bool, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	config, err := dev.readReg(_REGISTER_CONFIG)
	return config&_CONFIG_DRDY_BIT != 0, err
}

// ClearDataReady clears the data ready status bit. The element clears the
// bit when 0 is written to it.
func (dev *Dev) ClearDataReady() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.updateConfig(_CONFIG_DRDY_BIT, 0)
}

// Reset restores the element's power-up configuration by issuing the direct
// command. The element does not acknowledge the command; there is no
// readback.
func (dev *Dev) Reset() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeReg(_REGISTER_PRESET_DEF, _DIRECT_CMD)
}

// ManufacturerID returns the element's manufacturer ID register.
func (dev *Dev) ManufacturerID() (uint16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.readReg(_REGISTER_MFG_ID)
}

// DeviceID returns the element's device ID register.
func (dev *Dev) DeviceID() (uint16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.readReg(_REGISTER_DEVICE_ID)
}

// Sense reads the object temperature from the element and writes the value
// to the specified env variable. Implements physic.SenseEnv.
func (dev *Dev) Sense(env *physic.Env) error {
	env.Temperature = 0
	env.Pressure = 0
	env.Humidity = 0
	dev.mu.Lock()
	defer dev.mu.Unlock()
	celsius, err := dev.objectCelsius()
	if err != nil {
		return err
	}
	env.Temperature = celsiusToTemperature(celsius)
	return nil
}

// SenseContinuous continuously reads from the element and writes the value
// to the returned channel. Implements physic.SenseEnv. To terminate the
// continuous read, call Halt().
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.shutdown != nil {
		return nil, errors.New("as3935: SenseContinuous already running")
	}
	dev.shutdown = make(chan struct{})
	chResult := make(chan physic.Env, 16)
	go func(ch chan physic.Env, shutdown <-chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-shutdown:
				return
			case <-ticker.C:
				env := physic.Env{}
				if err := dev.Sense(&env); err == nil {
					ch <- env
				}
			}
		}
	}(chResult, dev.shutdown)
	return chResult, nil
}

// Precision returns the element's precision, or minimum value between steps
// the die temperature sensor can make. Implements physic.SenseEnv.
func (dev *Dev) Precision(env *physic.Env) {
	env.Temperature = _DEGREES_RESOLUTION
	env.Pressure = 0
	env.Humidity = 0
}

// Halt stops a SenseContinuous operation and powers the element down.
// Implements conn.Resource.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.shutdown != nil {
		close(dev.shutdown)
		dev.shutdown = nil
	}
	return dev.updateConfig(_CONFIG_MOD_MASK, uint16(ModePowerDown))
}

func (dev *Dev) String() string {
	return fmt.Sprintf("as3935: %s", dev.d.String())
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
