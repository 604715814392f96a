// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensirion

import "errors"

// The failure kinds a transaction can report in addition to the transport's
// own errors. Errors from the underlying i2c implementation are wrapped, so
// errors.Is and errors.As reach them through any value returned here.
var (
	// ErrInvalidCRC is returned when a response word's checksum byte does not
	// match the recomputed value. No data from the transaction is returned.
	ErrInvalidCRC = errors.New("invalid crc")

	// ErrInvalidResponse is returned when a word checksummed correctly but
	// decodes to a value outside the defined enumeration for the command,
	// for example an unknown sensor variant nibble.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrCommandFailed is returned when the device signalled failure through a
	// documented sentinel value, for example forced recalibration returning
	// 0xffff.
	ErrCommandFailed = errors.New("command failed")
)
