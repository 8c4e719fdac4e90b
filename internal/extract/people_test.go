package extract

import "testing"

func TestParsePeople(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"table for 4 please", 4, true},
		{"party of 3", 3, true},
		{"2 people", 2, true},
		{"12 guests", 12, true},
		{"for 6 pax", 6, true},
		// The parser itself imposes no bound; the merge layer rejects this.
		{"party of 75", 75, true},
		{"no numbers at all", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePeople(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePeople(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
