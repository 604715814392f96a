// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package scd4x

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
)

// DevConfig is the current running configuration of the device. Values prefixed
// with ASC refer to Auto-Self-Calibration. Use Dev.GetConfiguration() to read
// the value, and Dev.SetConfiguration() to apply changes.
//
// Refer to the datasheet for more information on settings.
type DevConfig struct {
	// Ambient pressure value. Used to adjust operation of sensor.
	AmbientPressure physic.Pressure
	// Automatic-Self-Calibration enabled. True or false.
	ASCEnabled bool
	// Refer to datasheet for usage.
	ASCInitialPeriod time.Duration
	// Refer to datasheet for usage.
	ASCStandardPeriod time.Duration
	// Target CO2 concentration for automatic self calibration.
	ASCTarget PPM
	// Sensor altitude in metres. Alternative method to adjust ambient pressure
	// for sensor correction.
	SensorAltitude physic.Distance
	// The 48 bit unique serial number of the device. Read-Only
	SerialNumber uint64
	// Offset temperature subtracted from the reading. Refer to the datasheet
	// for usage.
	TemperatureOffset physic.Temperature
	// The Type of sensor. Read-Only
	SensorType Variant
}

// GetConfiguration returns a structure containing all of the scd4x
// configuration variables. You can then alter settings and call
// SetConfiguration with it. The sensor must be idle: the device rejects most
// of these commands during periodic measurement.
//
// To examine the device use:
//
//	cfg, _ := dev.GetConfiguration()
//	fmt.Printf("Configuration=%#v\n", cfg)
func (d *Dev) GetConfiguration() (*DevConfig, error) {
	cfg := &DevConfig{}
	var err error

	if cfg.AmbientPressure, err = d.GetAmbientPressure(); err != nil {
		return nil, err
	}
	if cfg.ASCEnabled, err = d.GetASCEnabled(); err != nil {
		return nil, err
	}
	if cfg.ASCInitialPeriod, err = d.GetASCInitialPeriod(); err != nil {
		return nil, err
	}
	if cfg.ASCStandardPeriod, err = d.GetASCStandardPeriod(); err != nil {
		return nil, err
	}
	if cfg.ASCTarget, err = d.GetASCTarget(); err != nil {
		return nil, err
	}
	if cfg.SerialNumber, err = d.GetSerialNumber(); err != nil {
		return nil, err
	}
	if cfg.SensorType, err = d.GetSensorVariant(); err != nil {
		return nil, err
	}
	if cfg.SensorAltitude, err = d.GetSensorAltitude(); err != nil {
		return nil, err
	}
	if cfg.TemperatureOffset, err = d.GetTemperatureOffset(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetConfiguration alters the configuration of the sensor. Only values that
// differ from the running configuration are written. Note that this call
// does not persist the settings to EEPROM. You need to call Persist() to
// commit the writes to EEPROM. If you do not persist changes, then those
// settings will be lost when the unit is power-cycled.
//
// As with GetConfiguration, the sensor must be idle.
func (d *Dev) SetConfiguration(newCfg *DevConfig) error {
	currentConfig, err := d.GetConfiguration()
	if err != nil {
		return fmt.Errorf("scd4x GetConfiguration(): %w", err)
	}

	if currentConfig.AmbientPressure != newCfg.AmbientPressure {
		if err := d.SetAmbientPressure(newCfg.AmbientPressure); err != nil {
			return err
		}
	}
	if currentConfig.ASCEnabled != newCfg.ASCEnabled {
		if err := d.SetASCEnabled(newCfg.ASCEnabled); err != nil {
			return err
		}
	}
	if currentConfig.ASCInitialPeriod != newCfg.ASCInitialPeriod {
		if err := d.SetASCInitialPeriod(newCfg.ASCInitialPeriod); err != nil {
			return err
		}
	}
	if currentConfig.ASCStandardPeriod != newCfg.ASCStandardPeriod {
		if err := d.SetASCStandardPeriod(newCfg.ASCStandardPeriod); err != nil {
			return err
		}
	}
	if currentConfig.ASCTarget != newCfg.ASCTarget {
		if err := d.SetASCTarget(newCfg.ASCTarget); err != nil {
			return err
		}
	}
	if currentConfig.SensorAltitude != newCfg.SensorAltitude {
		if err := d.SetSensorAltitude(newCfg.SensorAltitude); err != nil {
			return err
		}
	}
	if currentConfig.TemperatureOffset != newCfg.TemperatureOffset {
		if err := d.SetTemperatureOffset(newCfg.TemperatureOffset); err != nil {
			return err
		}
	}
	return nil
}
