// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command as3935 polls an AS3935 sensor element and prints the die and
// object temperatures.
package main

import (
	"flag"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/atmosphereiot/as3935-element-library/as3935"
)

func main() {
	bus := flag.String("bus", "", "Name of the I²C bus")
	id := flag.Uint("id", 0, "Element instance id set by the address pins (0-7)")
	rate := flag.String("rate", "1", "Conversion rate in Hz (4, 2, 1, 0.5 or 0.25)")
	interval := flag.Duration("interval", time.Second, "Polling interval")
	transient := flag.Bool("transient", false, "Apply transient correction to the object temperature")
	flag.Parse()

	rates := map[string]as3935.ConversionRate{
		"4":    as3935.RateFourHertz,
		"2":    as3935.RateTwoHertz,
		"1":    as3935.RateOneHertz,
		"0.5":  as3935.RateHalfHertz,
		"0.25": as3935.RateQuarterHertz,
	}
	conversionRate, ok := rates[*rate]
	if !ok {
		log.Fatalf("invalid conversion rate %q", *rate)
	}

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	b, err := i2creg.Open(*bus)
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	opts := as3935.DefaultOpts
	opts.Rate = conversionRate
	dev, err := as3935.NewI2C(b, uint8(*id), &opts)
	if err != nil {
		log.Fatal(err)
	}

	mfg, err := dev.ManufacturerID()
	if err != nil {
		log.Fatal(err)
	}
	devID, err := dev.DeviceID()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%s manufacturer=%#04x device=%#04x", dev, mfg, devID)

	var history [4]float64
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		ambient, err := dev.AmbientTemperature()
		if err != nil {
			log.Fatal(err)
		}
		var object physic.Temperature
		if *transient {
			object, err = dev.ObjectTemperatureWithTransientCorrection(&history)
		} else {
			object, err = dev.ObjectTemperature()
		}
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("ambient %8.3f°C  object %8.3f°C", ambient.Celsius(), object.Celsius())

		<-ticker.C
	}
}
