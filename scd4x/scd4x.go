// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package scd4x

import (
	"fmt"
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/sensirion"
)

// PPM=Parts Per Million. Units of measure for CO2 concentration.
type PPM int

func (ppm PPM) String() string {
	return fmt.Sprintf("%d PPM", int(ppm))
}

// Variant identifies which sensor of the family is present. It is reported
// by the device itself, see GetSensorVariant.
type Variant int

const (
	SCD40 Variant = iota
	SCD41
	SCD43
)

func (v Variant) String() string {
	switch v {
	case SCD40:
		return "SCD40"
	case SCD41:
		return "SCD41"
	case SCD43:
		return "SCD43"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Type of reset to perform.
type ResetMode int

const (
	ResetFactory ResetMode = iota
	// Reset to last values stored in EEPROM
	ResetEEPROM
)

const (
	// These devices only support this i2c address.
	SensorAddress uint16 = 0x62

	// StopSettleTime is how long the sensor needs after
	// StopPeriodicMeasurement before it accepts further commands. The wait is
	// the caller's: the driver does not sleep.
	StopSettleTime = 500 * time.Millisecond

	// SelfTestTime is how long the sensor needs between StartSelfTest and
	// ReadSelfTestResult.
	SelfTestTime = 10 * time.Second

	// ForcedRecalibrationTime is how long the sensor needs between
	// StartForcedRecalibration and ReadForcedRecalibrationResult.
	ForcedRecalibrationTime = 400 * time.Millisecond
)

// The 16-bit command words.
const (
	cmdStartPeriodicMeasurement         uint16 = 0x21b1
	cmdReadMeasurement                  uint16 = 0xec05
	cmdStopPeriodicMeasurement          uint16 = 0x3f86
	cmdSetTemperatureOffset             uint16 = 0x241d
	cmdGetTemperatureOffset             uint16 = 0x2318
	cmdSetSensorAltitude                uint16 = 0x2427
	cmdGetSensorAltitude                uint16 = 0x2322
	cmdSetAmbientPressure               uint16 = 0xe000
	cmdGetAmbientPressure               uint16 = 0xe000
	cmdPerformForcedRecalibration       uint16 = 0x362f
	cmdSetASCEnabled                    uint16 = 0x2416
	cmdGetASCEnabled                    uint16 = 0x2313
	cmdSetASCTarget                     uint16 = 0x243a
	cmdGetASCTarget                     uint16 = 0x233f
	cmdStartLowPowerPeriodicMeasurement uint16 = 0x21ac
	cmdGetDataReadyStatus               uint16 = 0xe4b8
	cmdPersistSettings                  uint16 = 0x3615
	cmdGetSerialNumber                  uint16 = 0x3682
	cmdPerformSelfTest                  uint16 = 0x3639
	cmdPerformFactoryReset              uint16 = 0x3632
	cmdReinit                           uint16 = 0x3646
	cmdGetSensorVariant                 uint16 = 0x202f
	cmdMeasureSingleShot                uint16 = 0x219d
	cmdMeasureSingleShotRHTOnly         uint16 = 0x2196
	cmdPowerDown                        uint16 = 0x36e0
	cmdWakeUp                           uint16 = 0x36f6
	cmdSetASCInitialPeriod              uint16 = 0x2445
	cmdGetASCInitialPeriod              uint16 = 0x2340
	cmdSetASCStandardPeriod             uint16 = 0x244e
	cmdGetASCStandardPeriod             uint16 = 0x234b
)

// Dev represents an SCD4x device.
type Dev struct {
	s  *sensirion.Dev
	mu sync.Mutex
}

// The sensor reading. Returns CO2 PPM, Temperature, and Humidity.
type Env struct {
	physic.Env
	CO2 PPM
}

// Return the sensor readings in string format.
func (e *Env) String() string {
	return fmt.Sprintf("Temperature: %s Humidity: %s CO2: %s", e.Temperature.String(), e.Humidity.String(), e.CO2.String())
}

// NewI2C creates a new SCD4x sensor using the supplied bus and address.
// The constant value SensorAddress should be supplied as the value for
// addr.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	return &Dev{s: sensirion.New(b, addr)}, nil
}

// StartPeriodicMeasurement begins measuring every 5 seconds. Use
// GetDataReadyStatus to learn when a reading can be collected with
// ReadMeasurement.
func (d *Dev) StartPeriodicMeasurement() error {
	return d.send(cmdStartPeriodicMeasurement)
}

// StartLowPowerPeriodicMeasurement begins measuring every 30 seconds,
// trading sample rate for power consumption.
func (d *Dev) StartLowPowerPeriodicMeasurement() error {
	return d.send(cmdStartLowPowerPeriodicMeasurement)
}

// StopPeriodicMeasurement ends periodic measurement mode. The sensor accepts
// no further commands for StopSettleTime after this call; waiting that out is
// the caller's responsibility.
func (d *Dev) StopPeriodicMeasurement() error {
	return d.send(cmdStopPeriodicMeasurement)
}

// MeasureSingleShot triggers one on-demand measurement from idle mode.
// SCD41 and SCD43 only.
func (d *Dev) MeasureSingleShot() error {
	return d.send(cmdMeasureSingleShot)
}

// MeasureSingleShotRHTOnly triggers one on-demand measurement of temperature
// and humidity only; the CO2 word of the following reading is 0. SCD41 and
// SCD43 only.
func (d *Dev) MeasureSingleShotRHTOnly() error {
	return d.send(cmdMeasureSingleShotRHTOnly)
}

// GetDataReadyStatus reports whether a completed measurement is available to
// read.
func (d *Dev) GetDataReadyStatus() (bool, error) {
	words, err := d.query(cmdGetDataReadyStatus, 1)
	if err != nil {
		return false, err
	}
	// If the 11 LSB are 0, data is not ready.
	return words[0]&0x7ff != 0, nil
}

// ReadMeasurement collects the most recent reading into env.
func (d *Dev) ReadMeasurement(env *Env) error {
	words, err := d.query(cmdReadMeasurement, 3)
	if err != nil {
		return err
	}
	env.CO2 = PPM(words[0])
	env.Temperature = countToTemp(words[1])
	env.Humidity = countToHumidity(words[2])
	env.Pressure = 0
	return nil
}

// GetSerialNumber returns the unique 48 bit serial number of the device. It
// can be used to verify the presence of the sensor.
func (d *Dev) GetSerialNumber() (uint64, error) {
	words, err := d.query(cmdGetSerialNumber, 3)
	if err != nil {
		return 0, err
	}
	return uint64(words[0])<<32 | uint64(words[1])<<16 | uint64(words[2]), nil
}

// StartSelfTest begins the built-in diagnostic. The outcome is available from
// ReadSelfTestResult after SelfTestTime has elapsed; the driver does not wait.
func (d *Dev) StartSelfTest() error {
	return d.send(cmdPerformSelfTest)
}

// ReadSelfTestResult collects the outcome of an earlier StartSelfTest.
// It returns true if no malfunction was detected.
func (d *Dev) ReadSelfTestResult() (bool, error) {
	words, err := d.readPending(1)
	if err != nil {
		return false, err
	}
	return words[0] == 0, nil
}

// GetSensorVariant reports which sensor of the family is present.
func (d *Dev) GetSensorVariant() (Variant, error) {
	words, err := d.query(cmdGetSensorVariant, 1)
	if err != nil {
		return 0, err
	}
	switch words[0] >> 12 {
	case 0b0000:
		return SCD40, nil
	case 0b0001:
		return SCD41, nil
	case 0b0101:
		return SCD43, nil
	}
	return 0, fmt.Errorf("scd4x: variant nibble 0x%x: %w", words[0]>>12, sensirion.ErrInvalidResponse)
}

// Persist writes the current running configuration to the sensor EEPROM for
// use on the next power-up. The EEPROM supports a limited number of write
// cycles, so persist only when settings actually changed.
func (d *Dev) Persist() error {
	return d.send(cmdPersistSettings)
}

// Reset performs either a factory reset, or a re-load of settings from EEPROM
// depending on the value of mode.
func (d *Dev) Reset(mode ResetMode) error {
	switch mode {
	case ResetFactory:
		return d.send(cmdPerformFactoryReset)
	case ResetEEPROM:
		return d.send(cmdReinit)
	}
	return fmt.Errorf("scd4x: invalid reset mode 0x%x", mode)
}

// PowerDown puts the sensor into sleep mode. SCD41 and SCD43 only.
func (d *Dev) PowerDown() error {
	return d.send(cmdPowerDown)
}

// WakeUp returns the sensor from sleep mode to idle. The sensor does not
// acknowledge this command, so some transports report an error that can be
// ignored. SCD41 and SCD43 only.
func (d *Dev) WakeUp() error {
	return d.send(cmdWakeUp)
}

// SetTemperatureOffset sets the offset subtracted by the sensor from its raw
// temperature reading. The offset is a temperature difference, not an
// absolute temperature.
func (d *Dev) SetTemperatureOffset(offset physic.Temperature) error {
	return d.sendWithArg(cmdSetTemperatureOffset, offsetToCount(offset))
}

// GetTemperatureOffset returns the configured temperature offset.
func (d *Dev) GetTemperatureOffset() (physic.Temperature, error) {
	words, err := d.query(cmdGetTemperatureOffset, 1)
	if err != nil {
		return 0, err
	}
	return countToOffset(words[0]), nil
}

// SetSensorAltitude sets the installation altitude used for pressure
// compensation. Resolution is one metre.
func (d *Dev) SetSensorAltitude(altitude physic.Distance) error {
	return d.sendWithArg(cmdSetSensorAltitude, uint16(altitude/physic.Metre))
}

// GetSensorAltitude returns the configured installation altitude.
func (d *Dev) GetSensorAltitude() (physic.Distance, error) {
	words, err := d.query(cmdGetSensorAltitude, 1)
	if err != nil {
		return 0, err
	}
	return physic.Distance(words[0]) * physic.Metre, nil
}

// SetAmbientPressure sets the ambient pressure used for compensation,
// overriding any altitude setting. Resolution is one hectopascal.
func (d *Dev) SetAmbientPressure(pressure physic.Pressure) error {
	return d.sendWithArg(cmdSetAmbientPressure, uint16(pressure/(100*physic.Pascal)))
}

// GetAmbientPressure returns the configured ambient pressure.
func (d *Dev) GetAmbientPressure() (physic.Pressure, error) {
	words, err := d.query(cmdGetAmbientPressure, 1)
	if err != nil {
		return 0, err
	}
	return physic.Pressure(words[0]) * 100 * physic.Pascal, nil
}

// StartForcedRecalibration adjusts the CO2 baseline against the known
// reference concentration target. The sensor must have run in a measurement
// mode for at least 3 minutes beforehand, and must be stopped (plus the
// settle time) before this call. Collect the applied correction with
// ReadForcedRecalibrationResult after ForcedRecalibrationTime has elapsed.
func (d *Dev) StartForcedRecalibration(target PPM) error {
	return d.sendWithArg(cmdPerformForcedRecalibration, uint16(target))
}

// ReadForcedRecalibrationResult collects the signed correction applied by an
// earlier StartForcedRecalibration. If the recalibration failed, the error
// wraps sensirion.ErrCommandFailed.
func (d *Dev) ReadForcedRecalibrationResult() (PPM, error) {
	words, err := d.readPending(1)
	if err != nil {
		return 0, err
	}
	if words[0] == 0xffff {
		return 0, fmt.Errorf("scd4x: forced recalibration: %w", sensirion.ErrCommandFailed)
	}
	return PPM(int(words[0]) - 0x8000), nil
}

// SetASCEnabled enables or disables automatic self calibration.
func (d *Dev) SetASCEnabled(enabled bool) error {
	var w uint16
	if enabled {
		w = 1
	}
	return d.sendWithArg(cmdSetASCEnabled, w)
}

// GetASCEnabled reports whether automatic self calibration is enabled.
func (d *Dev) GetASCEnabled() (bool, error) {
	words, err := d.query(cmdGetASCEnabled, 1)
	if err != nil {
		return false, err
	}
	return words[0] != 0, nil
}

// SetASCTarget sets the CO2 concentration the automatic self calibration
// algorithm assumes as the baseline. To obtain the current value, visit:
//
// https://www.co2.earth/daily-co2
func (d *Dev) SetASCTarget(target PPM) error {
	return d.sendWithArg(cmdSetASCTarget, uint16(target))
}

// GetASCTarget returns the automatic self calibration target concentration.
func (d *Dev) GetASCTarget() (PPM, error) {
	words, err := d.query(cmdGetASCTarget, 1)
	if err != nil {
		return 0, err
	}
	return PPM(words[0]), nil
}

// SetASCInitialPeriod sets the duration of the first automatic self
// calibration period. The period must be a multiple of 4 hours.
func (d *Dev) SetASCInitialPeriod(period time.Duration) error {
	if period%(4*time.Hour) != 0 {
		return fmt.Errorf("scd4x: invalid initial period %s. must be a multiple of 4 hours", period)
	}
	return d.sendWithArg(cmdSetASCInitialPeriod, uint16(period/time.Hour))
}

// GetASCInitialPeriod returns the duration of the first automatic self
// calibration period.
func (d *Dev) GetASCInitialPeriod() (time.Duration, error) {
	words, err := d.query(cmdGetASCInitialPeriod, 1)
	if err != nil {
		return 0, err
	}
	return time.Hour * time.Duration(words[0]), nil
}

// SetASCStandardPeriod sets the duration of subsequent automatic self
// calibration periods. The period must be a multiple of 4 hours.
func (d *Dev) SetASCStandardPeriod(period time.Duration) error {
	if period%(4*time.Hour) != 0 {
		return fmt.Errorf("scd4x: invalid standard period %s. must be a multiple of 4 hours", period)
	}
	return d.sendWithArg(cmdSetASCStandardPeriod, uint16(period/time.Hour))
}

// GetASCStandardPeriod returns the duration of subsequent automatic self
// calibration periods.
func (d *Dev) GetASCStandardPeriod() (time.Duration, error) {
	words, err := d.query(cmdGetASCStandardPeriod, 1)
	if err != nil {
		return 0, err
	}
	return time.Hour * time.Duration(words[0]), nil
}

// Halt stops periodic measurement. It implements conn.Resource. As with
// StopPeriodicMeasurement, the sensor accepts no further commands for
// StopSettleTime afterwards.
func (d *Dev) Halt() error {
	return d.StopPeriodicMeasurement()
}

func (d *Dev) String() string {
	return fmt.Sprintf("scd4x: %s", d.s.String())
}

var _ conn.Resource = &Dev{}

func (d *Dev) send(cmd uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s.Send(cmd)
}

func (d *Dev) sendWithArg(cmd uint16, arg uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s.SendWithArg(cmd, arg)
}

func (d *Dev) query(cmd uint16, words int) ([]uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s.Query(cmd, words)
}

func (d *Dev) readPending(words int) ([]uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s.ReadPending(words)
}

// Formulas used for temperature offset calculation.
func offsetToCount(offset physic.Temperature) uint16 {
	degrees := float64(offset) / float64(physic.Celsius)
	return uint16(math.Round(degrees * 65536.0 / 175.0))
}

func countToOffset(count uint16) physic.Temperature {
	degrees := float64(count) * 175.0 / 65536.0
	return physic.Temperature(degrees * float64(physic.Celsius))
}

// countToTemp converts a device count to Temperature.
func countToTemp(count uint16) physic.Temperature {
	frac := float64(count) / 65535.0
	result := -45 + 175*frac
	return physic.ZeroCelsius + physic.Temperature(float64(physic.Celsius)*result)
}

func countToHumidity(count uint16) physic.RelativeHumidity {
	frac := float64(count) / 65535.0
	return physic.RelativeHumidity(frac * 100.0 * float64(physic.PercentRH))
}
