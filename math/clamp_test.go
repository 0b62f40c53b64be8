// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		min, val, max, want int
	}{
		{0, -5, 255, 0},
		{0, 300, 255, 255},
		{0, 128, 255, 128},
		{1, 1, 1, 1},
	}
	for _, c := range cases {
		if got := Clamp(c.min, c.val, c.max); got != c.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", c.min, c.val, c.max, got, c.want)
		}
	}
	if got := Clamp(0.0, 1.5, 1.0); got != 1.0 {
		t.Errorf("Clamp(0, 1.5, 1) = %v, want 1", got)
	}
}
