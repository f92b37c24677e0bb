package pdf

import "testing"

func TestStyleFromDescriptor(t *testing.T) {
	tests := []struct {
		name      string
		baseFont  string
		descFlags int64
		weight    float64
		want      FontFlags
	}{
		{"plain", "Helvetica", 0, 0, 0},
		{"bold name", "Helvetica-Bold", 0, 0, FlagBold},
		{"subset bold name", "ABCDEF+Montserrat-BoldItalic", 0, 0, FlagBold | FlagItalic},
		{"force bold flag", "Georgia", 0x40000, 0, FlagBold},
		{"heavy weight", "Inter", 0, 800, FlagBold},
		{"regular weight", "Inter", 0, 400, 0},
		{"black name", "Roboto-Black", 0, 0, FlagBold},
		{"italic flag", "Garamond", 0x40, 0, FlagItalic},
		{"oblique name", "Helvetica-Oblique", 0, 0, FlagItalic},
		{"fixed pitch", "Courier", 0x01, 0, FlagMonospace},
		{"serif", "Times-Roman", 0x22, 0, FlagSerif},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StyleFromDescriptor(tt.baseFont, tt.descFlags, tt.weight)
			if got != tt.want {
				t.Errorf("StyleFromDescriptor(%q, %#x, %v) = %v, want %v",
					tt.baseFont, tt.descFlags, tt.weight, got, tt.want)
			}
		})
	}
}

func TestFlagBoldIsBitValueTwo(t *testing.T) {
	if FlagBold != 2 {
		t.Fatalf("FlagBold = %d, want 2", FlagBold)
	}
}

func TestStripSubset(t *testing.T) {
	tests := map[string]string{
		"ABCDEF+Helvetica": "Helvetica",
		"Helvetica":        "Helvetica",
		"AB+Odd":           "AB+Odd",
		"":                 "",
	}
	for in, want := range tests {
		if got := StripSubset(in); got != want {
			t.Errorf("StripSubset(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFontFlagsString(t *testing.T) {
	if got := FontFlags(0).String(); got != "regular" {
		t.Errorf("got %q, want regular", got)
	}
	if got := (FlagBold | FlagItalic).String(); got != "bold|italic" {
		t.Errorf("got %q, want bold|italic", got)
	}
}
