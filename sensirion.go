// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensirion

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// Dev frames command words onto one i2c device and decodes the 3-byte
// data+CRC wire words coming back. It keeps no device state and never sleeps:
// commands whose results the device needs time to compute are issued with
// Send and collected later with ReadPending, with the wait owned by the
// caller.
//
// Dev performs no locking. Callers sharing one Dev across goroutines must
// serialize transactions themselves; the chip drivers in the subpackages do
// so with a mutex.
type Dev struct {
	d *i2c.Dev
}

// New returns a transaction engine for the device at addr on bus b.
func New(b i2c.Bus, addr uint16) *Dev {
	return &Dev{d: &i2c.Dev{Bus: b, Addr: addr}}
}

// Send writes the 2-byte command with no arguments and reads nothing back.
func (d *Dev) Send(cmd uint16) error {
	w := []byte{byte(cmd >> 8), byte(cmd)}
	if err := d.d.Tx(w, nil); err != nil {
		return fmt.Errorf("sensirion cmd 0x%04x: %w", cmd, err)
	}
	return nil
}

// SendWithArg writes the command followed by one argument wire word.
func (d *Dev) SendWithArg(cmd uint16, arg uint16) error {
	return d.SendWithArgs(cmd, arg)
}

// SendWithArgs writes the command followed by one 3-byte wire word per
// argument, each carrying its own trailing CRC.
func (d *Dev) SendWithArgs(cmd uint16, args ...uint16) error {
	w := make([]byte, 2, 2+3*len(args))
	w[0] = byte(cmd >> 8)
	w[1] = byte(cmd)
	for _, arg := range args {
		w = appendWord(w, arg)
	}
	if err := d.d.Tx(w, nil); err != nil {
		return fmt.Errorf("sensirion cmd 0x%04x: %w", cmd, err)
	}
	return nil
}

// Query writes the command and reads back the requested number of wire words.
// Every word's CRC is verified before any word is decoded; a mismatch aborts
// the transaction with ErrInvalidCRC and no data is returned.
func (d *Dev) Query(cmd uint16, words int) ([]uint16, error) {
	w := []byte{byte(cmd >> 8), byte(cmd)}
	r := make([]byte, 3*words)
	if err := d.d.Tx(w, r); err != nil {
		return nil, fmt.Errorf("sensirion cmd 0x%04x: %w", cmd, err)
	}
	result, err := decodeWords(r)
	if err != nil {
		return nil, fmt.Errorf("sensirion cmd 0x%04x: %w", cmd, err)
	}
	return result, nil
}

// ReadPending reads wire words with no preceding command write. It collects
// the result of an earlier Send once the caller has waited out the device's
// processing time, e.g. the self test outcome.
func (d *Dev) ReadPending(words int) ([]uint16, error) {
	r := make([]byte, 3*words)
	if err := d.d.Tx(nil, r); err != nil {
		return nil, fmt.Errorf("sensirion read: %w", err)
	}
	result, err := decodeWords(r)
	if err != nil {
		return nil, fmt.Errorf("sensirion read: %w", err)
	}
	return result, nil
}

func (d *Dev) String() string {
	return d.d.String()
}

// appendWord appends the big-endian bytes of val followed by their CRC.
func appendWord(b []byte, val uint16) []byte {
	b = append(b, byte(val>>8), byte(val))
	return append(b, CRC8(b[len(b)-2:]))
}

// decodeWords verifies the CRC of every 3-byte word in r, then returns the
// big-endian 16-bit values in order.
func decodeWords(r []byte) ([]uint16, error) {
	for ix := 0; ix+3 <= len(r); ix += 3 {
		if CRC8(r[ix:ix+2]) != r[ix+2] {
			return nil, ErrInvalidCRC
		}
	}
	result := make([]uint16, len(r)/3)
	for ix := range result {
		result[ix] = uint16(r[ix*3])<<8 | uint16(r[ix*3+1])
	}
	return result, nil
}
