package domain

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases", "HDFC Equity Fund", "hdfc equity fund"},
		{"strips punctuation", "ABC Fund - Reg - Growth", "abc fund reg growth"},
		{"collapses whitespace", "  SBI   Bluechip \t Fund ", "sbi bluechip fund"},
		{"keeps digits", "Quant 10 Year Gilt", "quant 10 year gilt"},
		{"empty", "   -- ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.raw); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestKeyIdempotent(t *testing.T) {
	inputs := []string{"HDFC Equity Fund", "ABC Fund - Reg - Growth", "  SBI   Bluechip "}
	for _, raw := range inputs {
		once := Key(raw)
		if twice := Key(once); twice != once {
			t.Errorf("Key not idempotent for %q: %q != %q", raw, twice, once)
		}
	}
}

func TestCleanSchemeName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"infix plan boilerplate", "ABC Fund - Reg - Growth", "ABC Fund"},
		{"bare reg suffix", "XYZ Fund-Reg", "XYZ Fund"},
		{"growth suffix", "Alpha Fund - Growth", "Alpha Fund"},
		{"regular suffix", "Beta Fund Regular", "Beta Fund"},
		{"trailing footnote marker", "Gamma Fund #", "Gamma Fund"},
		{"leading noise", "* Delta Fund", "Delta Fund"},
		{"growth inside name survives", "HDFC Equity Growth Fund", "HDFC Equity Growth Fund"},
		{"already clean", "SBI Bluechip Fund", "SBI Bluechip Fund"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSchemeName(tt.raw); got != tt.want {
				t.Errorf("CleanSchemeName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanSchemeNameIdempotent(t *testing.T) {
	inputs := []string{"ABC Fund - Reg - Growth", "XYZ Fund-Reg", "Gamma Fund #"}
	for _, raw := range inputs {
		once := CleanSchemeName(raw)
		if twice := CleanSchemeName(once); twice != once {
			t.Errorf("CleanSchemeName not idempotent for %q: %q != %q", raw, twice, once)
		}
	}
}
