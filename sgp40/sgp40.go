// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sgp40 provides a driver for the Sensirion SGP40 VOC sensor. The
// sensor reports a raw gas signal compensated for ambient humidity and
// temperature; mapping the raw signal to a VOC index is done externally by
// Sensirion's gas index algorithm.
//
// Like the scd4x driver, this package tracks no device state and never
// sleeps.
//
// Datasheet
//
//	https://sensirion.com/media/documents/296373BB/6203C5DF/Sensirion_Gas_Sensors_Datasheet_SGP40.pdf
package sgp40

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/sensirion"
)

const (
	// These devices only support this i2c address.
	SensorAddress uint16 = 0x59
)

// The 16-bit command words.
const (
	cmdGetSerialNumber  uint16 = 0x3682
	cmdTurnHeaterOff    uint16 = 0x3615
	cmdExecuteSelfTest  uint16 = 0x280e
	cmdMeasureRawSignal uint16 = 0x260f
)

// Dev represents an SGP40 device.
type Dev struct {
	s  *sensirion.Dev
	mu sync.Mutex
}

// NewI2C creates a new SGP40 sensor using the supplied bus and address.
// The constant value SensorAddress should be supplied as the value for addr.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	return &Dev{s: sensirion.New(b, addr)}, nil
}

// SelfTest runs the built-in diagnostic and returns true if the sensor
// hardware is intact. The test takes around 250 ms on the device.
func (d *Dev) SelfTest() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	words, err := d.s.Query(cmdExecuteSelfTest, 1)
	if err != nil {
		return false, err
	}
	switch words[0] >> 8 {
	case 0xd4:
		return true, nil
	case 0x4b:
		return false, nil
	}
	return false, fmt.Errorf("sgp40: self test status byte 0x%02x: %w", words[0]>>8, sensirion.ErrInvalidResponse)
}

// GetSerialNumber returns the unique 48 bit serial number of the device. It
// can be used to verify the presence of the sensor.
func (d *Dev) GetSerialNumber() (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	words, err := d.s.Query(cmdGetSerialNumber, 3)
	if err != nil {
		return 0, err
	}
	return uint64(words[0])<<32 | uint64(words[1])<<16 | uint64(words[2]), nil
}

// TurnHeaterOff switches the hotplate off and returns the sensor to idle
// mode.
func (d *Dev) TurnHeaterOff() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s.Send(cmdTurnHeaterOff)
}

// MeasureRawSignal measures the raw gas signal, compensated with the ambient
// humidity and temperature supplied by the caller. The sensor needs up to
// 30 ms to sample before the result read is acknowledged.
//
// Use 50%rH and 25°C when no compensation source is available; those are the
// device defaults.
func (d *Dev) MeasureRawSignal(humidity physic.RelativeHumidity, temp physic.Temperature) (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.s.SendWithArgs(cmdMeasureRawSignal, HumidityTicks(humidity), TemperatureTicks(temp)); err != nil {
		return 0, err
	}
	words, err := d.s.ReadPending(1)
	if err != nil {
		return 0, err
	}
	return words[0], nil
}

// Halt turns the heater off. It implements conn.Resource.
func (d *Dev) Halt() error {
	return d.TurnHeaterOff()
}

func (d *Dev) String() string {
	return fmt.Sprintf("sgp40: %s", d.s.String())
}

var _ conn.Resource = &Dev{}

// HumidityTicks converts a relative humidity to the fixed point compensation
// encoding the sensor expects. Values are clamped to the 0..100%rH range.
func HumidityTicks(humidity physic.RelativeHumidity) uint16 {
	rh := float64(humidity) / float64(physic.PercentRH)
	return clampTicks(rh * 65535.0 / 100.0)
}

// TemperatureTicks converts a temperature to the fixed point compensation
// encoding the sensor expects. Values are clamped to the -45..130°C range.
func TemperatureTicks(temp physic.Temperature) uint16 {
	return clampTicks((temp.Celsius() + 45.0) * 65535.0 / 175.0)
}

func clampTicks(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}
