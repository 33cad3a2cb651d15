package mcp

import "testing"

// TestParseWeek verifies week parameter validation against the
// selectable range.
func TestParseWeek(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"12", 12, false},
		{"7", 7, false},
		{"0", 0, true},
		{"13", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseWeek(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseWeek(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseWeek(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseWeek(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
