// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensirion

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

const testAddress uint16 = 0x62

// getDev returns an engine wired to a playback bus primed with ops.
func getDev(ops []i2ctest.IO) *Dev {
	pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
	return New(pb, testAddress)
}

func TestSend(t *testing.T) {
	dev := getDev([]i2ctest.IO{
		{Addr: testAddress, W: []uint8{0x36, 0x39}}})
	if err := dev.Send(0x3639); err != nil {
		t.Error(err)
	}
}

func TestSendWithArg(t *testing.T) {
	dev := getDev([]i2ctest.IO{
		{Addr: testAddress, W: []uint8{0x36, 0x2f, 0x01, 0xf4, 0x33}}})
	if err := dev.SendWithArg(0x362f, 0x01f4); err != nil {
		t.Error(err)
	}
}

func TestSendWithArgs(t *testing.T) {
	// Two argument words, each with its own trailing CRC. 8 bytes total.
	dev := getDev([]i2ctest.IO{
		{Addr: testAddress, W: []uint8{0x26, 0x0f, 0x7f, 0xff, 0x8f, 0x66, 0x66, 0x93}}})
	if err := dev.SendWithArgs(0x260f, 0x7fff, 0x6666); err != nil {
		t.Error(err)
	}
}

func TestQuery(t *testing.T) {
	dev := getDev([]i2ctest.IO{
		{Addr: testAddress, W: []uint8{0xec, 0x05},
			R: []uint8{0x01, 0xf4, 0x33, 0x66, 0x67, 0xa2, 0x5e, 0xb9, 0x3c}}})
	words, err := dev.Query(0xec05, 3)
	if err != nil {
		t.Fatal(err)
	}
	expected := []uint16{0x01f4, 0x6667, 0x5eb9}
	for ix, word := range expected {
		if words[ix] != word {
			t.Errorf("word %d: received 0x%04x expected 0x%04x", ix, words[ix], word)
		}
	}
}

func TestQueryInvalidCRC(t *testing.T) {
	// Second word carries a corrupted CRC byte.
	dev := getDev([]i2ctest.IO{
		{Addr: testAddress, W: []uint8{0xec, 0x05},
			R: []uint8{0x01, 0xf4, 0x33, 0x66, 0x67, 0x00, 0x5e, 0xb9, 0x3c}}})
	words, err := dev.Query(0xec05, 3)
	if !errors.Is(err, ErrInvalidCRC) {
		t.Errorf("expected ErrInvalidCRC, received %v", err)
	}
	if words != nil {
		t.Errorf("expected no data on crc failure, received %#v", words)
	}
}

func TestReadPending(t *testing.T) {
	dev := getDev([]i2ctest.IO{
		{Addr: testAddress, R: []uint8{0x00, 0x00, 0x81}}})
	words, err := dev.ReadPending(1)
	if err != nil {
		t.Fatal(err)
	}
	if words[0] != 0 {
		t.Errorf("received 0x%04x expected 0", words[0])
	}
}

func TestTransportError(t *testing.T) {
	// An exhausted playback reports a bus error, which must come back wrapped
	// and distinct from a checksum failure.
	dev := getDev(nil)
	_, err := dev.Query(0xe4b8, 1)
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if errors.Is(err, ErrInvalidCRC) || errors.Is(err, ErrInvalidResponse) || errors.Is(err, ErrCommandFailed) {
		t.Errorf("transport error misreported as a protocol error: %v", err)
	}
}
