package textutil

import "testing"

func TestDistance(t *testing.T) {
	cases := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "blonde_hair", b: "blonde_hair", want: 0},
		{name: "empty both", a: "", b: "", want: 0},
		{name: "empty left", a: "", b: "tag", want: 3},
		{name: "empty right", a: "tag", b: "", want: 3},
		{name: "single substitution", a: "cat", b: "hat", want: 1},
		{name: "single insertion", a: "color", b: "colour", want: 1},
		{name: "transposed pair", a: "ab", b: "ba", want: 2},
		{name: "disjoint", a: "abc", b: "xyz", want: 3},
		{name: "prefix", a: "hair", b: "hair_color", want: 6},
		{name: "multibyte runes", a: "café", b: "cafe", want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Distance(tc.a, tc.b); got != tc.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"color", "colour"},
		{"blonde_hair", "blond_hair"},
		{"", "anything"},
		{"short", "much_longer_tag"},
	}

	for _, pair := range pairs {
		ab := Distance(pair[0], pair[1])
		ba := Distance(pair[1], pair[0])
		if ab != ba {
			t.Errorf("Distance(%q, %q) = %d but Distance(%q, %q) = %d", pair[0], pair[1], ab, pair[1], pair[0], ba)
		}
	}
}
