package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "Timer", width: 5, want: "Timer"},
		{name: "cut", in: "Metronome", width: 6, want: "Metro…"},
		{name: "zero", in: "Scales", width: 0, want: ""},
		{name: "one column", in: "Scales", width: 1, want: "…"},
		{name: "wide runes kept whole", in: "音階練習", width: 6, want: "音階…"},
		{name: "wide rune does not split", in: "音階練習", width: 4, want: "音…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if tt.width > 0 && Width(got) > tt.width {
				t.Errorf("Truncate(%q, %d) is %d columns wide", tt.in, tt.width, Width(got))
			}
		})
	}
}

func TestStyledWidth(t *testing.T) {
	if got := StyledWidth("\x1b[1mbold\x1b[0m"); got != 4 {
		t.Errorf("StyledWidth = %d, want 4", got)
	}
}
