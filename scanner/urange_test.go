package scanner

import "testing"

func TestMatchesUrangeText(t *testing.T) {
	valid := []string{"u+1F", "U+1f", "u+0-7F", "u+0??", "u+1F??-2FFF", "u+??????"}
	for _, s := range valid {
		if !matchesUrangeText(s) {
			t.Errorf("expected %q to match the urange text grammar", s)
		}
	}

	invalid := []string{"u+", "u+1234567", "u+0?0", "u+g", "u+1-"}
	for _, s := range invalid {
		if matchesUrangeText(s) {
			t.Errorf("expected %q to NOT match the urange text grammar", s)
		}
	}
}
