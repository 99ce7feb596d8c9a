package display

import "testing"

func TestIDString(t *testing.T) {
	if got := ID(69734662).String(); got != "69734662" {
		t.Errorf("String() = %s, want 69734662", got)
	}
}
