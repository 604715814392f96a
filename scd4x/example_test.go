//go:build examples
// +build examples

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package scd4x_test

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"periph.io/x/sensirion/scd4x"
)

// basic example program for scd4x sensors using this library.
//
// To execute this as a stand-alone program:
//
// Copy the file example_test.go to a new directory.
// rename the file to main.go
// rename the Example() function to main, and the package to main
//
// execute:
//
//	go mod init mydomain.com/scd4x
//	go mod tidy
//	go build -o main main.go
//	./main
func Example() {
	fmt.Println("scd4x example program")
	if _, err := host.Init(); err != nil {
		fmt.Println(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	dev, err := scd4x.NewI2C(bus, scd4x.SensorAddress)
	if err != nil {
		log.Fatal(err)
	}

	serial, err := dev.GetSerialNumber()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("serial number: %d\n", serial)

	if err := dev.StartPeriodicMeasurement(); err != nil {
		log.Fatal(err)
	}
	// The driver never sleeps on the device's behalf. Poll until the first
	// reading is available, then collect it.
	for {
		ready, err := dev.GetDataReadyStatus()
		if err != nil {
			log.Fatal(err)
		}
		if ready {
			break
		}
		time.Sleep(time.Second)
	}
	env := scd4x.Env{}
	if err := dev.ReadMeasurement(&env); err != nil {
		log.Fatal(err)
	}
	fmt.Println(env.String())

	if err := dev.StopPeriodicMeasurement(); err != nil {
		log.Fatal(err)
	}
	time.Sleep(scd4x.StopSettleTime)

	cfg, err := dev.GetConfiguration()
	if err == nil {
		fmt.Printf("Configuration: %#v\n", cfg)
	} else {
		fmt.Println(err)
	}
	// Output: Temperature: 24.845°C Humidity: 32.3%rH CO2: 581 PPM
}
