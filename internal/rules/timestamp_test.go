package rules

import "testing"

func TestValidTimestamp(t *testing.T) {
	valid := []string{
		"2024-09-05T21:22:52+00:00",
		"2024-09-05T21:22:52.749585+00:00",
		"2024-09-05T21:22:52Z",
		"2024-09-05T21:22:52.749585Z",
		"2024-09-05T21:22:52",
		"2024-09-05T21:22:52.749585",
		"2024-09-05 21:22:52",
		"2024-09-05",
		"2024-09-05T21:22:52-07:00",
		"2024-09-05T21:22:52+0000",
	}
	for _, s := range valid {
		if !ValidTimestamp(s) {
			t.Errorf("expected %q to be accepted", s)
		}
	}

	invalid := []string{
		"",
		"not a date",
		"2024-09-05T21:22:52.749585+00+00:00",
		"05/09/2024",
		"2024-13-05T21:22:52Z",
		"September 5th 2024",
	}
	for _, s := range invalid {
		if ValidTimestamp(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
