// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensirion implements the command/response protocol shared by
// Sensirion digital gas sensors: 2-byte big-endian command words, and 3-byte
// wire words carrying a 16-bit big-endian value followed by an 8-bit CRC.
// Every value crossing the bus in either direction, including command
// arguments, travels in that 3-byte unit.
//
// The chip drivers in the scd4x and sgp40 subpackages are built on this
// package. Use it directly only to talk to a Sensirion device that does not
// have a driver yet.
package sensirion
