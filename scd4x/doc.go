// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// This package provides a driver for the Sensirion SCD4x CO2 sensors. The
// scd4x family provide a compact sensor that can be used to measure
// Temperature, Humidity, and CO2 concentration.
//
// The driver keeps no record of the sensor's operating mode. Commands that
// are illegal in the current mode are rejected by the device itself, which
// surfaces as a bus error (typically a missing acknowledgment). Likewise the
// driver never sleeps: operations the device needs time for, such as the
// self test or the settling period after stopping periodic measurement, are
// exposed as separate start and read calls with the wait owned by the
// caller.
//
// Refer to the datasheet for more information.
//
// https://sensirion.com/media/documents/48C4B7FB/66E05452/CD_DS_SCD4x_Datasheet_D1.pdf
package scd4x
