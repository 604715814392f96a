// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensirion

import "testing"

func TestCRC8(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		{bytes: []byte{0xbe, 0xef}, result: 0x92},
		{bytes: []byte{0x01, 0xa4}, result: 0x4d},
		{bytes: []byte{0xab, 0xcd}, result: 0x6f},
		{bytes: []byte{0x01, 0xf4}, result: 0x33},
		{bytes: []byte{0x00, 0x00}, result: 0x81},
	}
	for _, test := range tests {
		res := CRC8(test.bytes)
		if res != test.result {
			t.Errorf("CRC8(%#v)!=0x%x received 0x%x", test.bytes, test.result, res)
		}
	}
}

// Flipping any single bit of a word must change its CRC.
func TestCRC8BitFlip(t *testing.T) {
	word := []byte{0x5e, 0xb9}
	crc := CRC8(word)
	for bit := 0; bit < 16; bit++ {
		flipped := []byte{word[0], word[1]}
		flipped[bit/8] ^= 1 << (bit % 8)
		if CRC8(flipped) == crc {
			t.Errorf("flipping bit %d of %#v left the crc unchanged", bit, word)
		}
	}
}
