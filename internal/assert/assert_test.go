package assert

import "testing"

func TestCheckPasses(t *testing.T) {
	if err := Check(true, "should not fire"); err != nil {
		t.Errorf("Check(true, ...) = %v, want nil", err)
	}
}

func TestCheckFails(t *testing.T) {
	err := Check(false, "value %d is invalid", 42)
	if err == nil {
		t.Fatal("Check(false, ...) = nil, want an error")
	}
	if err.Error() != "value 42 is invalid" {
		t.Errorf("Check error = %q, want formatted message", err.Error())
	}
}

func TestInRange(t *testing.T) {
	if err := InRange(5, 0, 10, "limit"); err != nil {
		t.Errorf("InRange(5, 0, 10) = %v, want nil", err)
	}
	if err := InRange(-1, 0, 10, "limit"); err == nil {
		t.Error("InRange(-1, 0, 10) = nil, want an error")
	}
	if err := InRange(11, 0, 10, "limit"); err == nil {
		t.Error("InRange(11, 0, 10) = nil, want an error")
	}
}
