// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sensirion-mon reads a Sensirion SCD4x CO2 sensor, and optionally an SGP40
// VOC sensor compensated with the SCD4x readings, and logs the measurements.
//
// The protocol layer never waits on the sensors, so all device timing (data
// ready polling, the settle period after stopping periodic measurement) is
// composed here.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"periph.io/x/sensirion/scd4x"
	"periph.io/x/sensirion/sgp40"
)

func main() {
	busName := flag.String("bus", "", "i2c bus to use, empty for the first available")
	interval := flag.Duration("interval", 5*time.Second, "time between readings")
	count := flag.Int("count", 0, "number of readings to take, 0 for unlimited")
	voc := flag.Bool("voc", false, "also sample an SGP40 VOC sensor")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("initializing host")
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		log.Fatal().Err(err).Msg("opening i2c bus")
	}
	defer bus.Close()

	co2, err := scd4x.NewI2C(bus, scd4x.SensorAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("creating scd4x")
	}
	serial, err := co2.GetSerialNumber()
	if err != nil {
		log.Fatal().Err(err).Msg("reading scd4x serial number")
	}
	log.Info().Uint64("serial", serial).Msg("scd4x found")

	var gas *sgp40.Dev
	if *voc {
		if gas, err = sgp40.NewI2C(bus, sgp40.SensorAddress); err != nil {
			log.Fatal().Err(err).Msg("creating sgp40")
		}
		serial, err := gas.GetSerialNumber()
		if err != nil {
			log.Fatal().Err(err).Msg("reading sgp40 serial number")
		}
		log.Info().Uint64("serial", serial).Msg("sgp40 found")
		defer func() {
			if err := gas.TurnHeaterOff(); err != nil {
				log.Error().Err(err).Msg("turning sgp40 heater off")
			}
		}()
	}

	if err := co2.StartPeriodicMeasurement(); err != nil {
		log.Fatal().Err(err).Msg("starting periodic measurement")
	}
	defer func() {
		if err := co2.StopPeriodicMeasurement(); err != nil {
			log.Error().Err(err).Msg("stopping periodic measurement")
		}
		time.Sleep(scd4x.StopSettleTime)
	}()

	for taken := 0; *count == 0 || taken < *count; taken++ {
		env := scd4x.Env{}
		if err := sense(co2, &env); err != nil {
			log.Error().Err(err).Msg("reading measurement")
			continue
		}
		ev := log.Info().
			Int("co2_ppm", int(env.CO2)).
			Float64("temperature_c", env.Temperature.Celsius()).
			Str("humidity", env.Humidity.String())
		if gas != nil {
			// Compensate the VOC measurement with the climate reading just
			// taken.
			raw, err := gas.MeasureRawSignal(env.Humidity, env.Temperature)
			if err != nil {
				log.Error().Err(err).Msg("measuring raw voc signal")
			} else {
				ev = ev.Uint16("voc_raw", raw)
			}
		}
		ev.Msg("reading")
		time.Sleep(*interval)
	}
}

// sense polls until the sensor reports a completed measurement, then collects
// it. Periodic mode produces a reading every 5 seconds.
func sense(dev *scd4x.Dev, env *scd4x.Env) error {
	for {
		ready, err := dev.GetDataReadyStatus()
		if err != nil {
			return err
		}
		if ready {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	return dev.ReadMeasurement(env)
}
