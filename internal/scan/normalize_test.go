package scan

import "testing"

func TestNormalizeAlbumName(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		wantDisc int
	}{
		{"Best Album (Disc 1)", "Best Album", 1},
		{"Best Album [Disc 2]", "Best Album", 2},
		{"Best Album (CD 3)", "Best Album", 3},
		{"Best Album - Disc 2", "Best Album", 2},
		{"Best Album CD2", "Best Album", 2},
		{"best album (disc 12)", "best album", 12},
		{"Best Album", "Best Album", 0},
		{"Compact Disc Anthology", "Compact Disc Anthology", 0},
		{"Disc 1", "Disc 1", 0},
		{"  Spaced Album  ", "Spaced Album", 0},
		{"ABCD 2", "ABCD 2", 0},
		{"Redisc 3", "Redisc 3", 0},
		{"AC/DC Live (Disc 2)", "AC/DC Live", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, disc := NormalizeAlbumName(tt.input)
			if got != tt.want || disc != tt.wantDisc {
				t.Errorf("NormalizeAlbumName(%q) = (%q, %d), want (%q, %d)",
					tt.input, got, disc, tt.want, tt.wantDisc)
			}
		})
	}
}

func TestNormalizeAlbumName_Idempotent(t *testing.T) {
	inputs := []string{
		"Best Album (Disc 1)",
		"Best Album (Disc 1) (Disc 2)",
		"Best Album",
		"Disc 1",
	}
	for _, input := range inputs {
		once, _ := NormalizeAlbumName(input)
		twice, _ := NormalizeAlbumName(once)
		if once != twice {
			t.Errorf("normalization of %q not idempotent: %q then %q", input, once, twice)
		}
	}
}

func TestDiscFromFolder(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"Disc 1", 1, true},
		{"disc 2", 2, true},
		{"CD3", 3, true},
		{"Best Album Disc 2", 2, true},
		{"disc_4", 4, true},
		{"Bonus Material", 0, false},
		{"abcd 2", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DiscFromFolder(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DiscFromFolder(%q) = (%d, %v), want (%d, %v)",
					tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
