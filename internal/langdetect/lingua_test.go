package langdetect

import "testing"

func TestDetectISO6391(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"english snippet", "Acme Corp raised a new funding round in San Francisco last week", "en"},
		{"german snippet", "Das Startup aus Berlin hat eine neue Finanzierungsrunde abgeschlossen", "de"},
		{"spanish snippet", "La empresa anunció una nueva ronda de financiación esta semana", "es"},
		{"empty input", "", ""},
		{"whitespace only", "   \t  ", ""},
		{"too few letters", "Acme", ""},
		{"digits and punctuation", "2020-2024 +49% !!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectISO6391(tc.text); got != tc.want {
				t.Fatalf("DetectISO6391(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
