package logging

import "testing"

func TestGetLevelDefaultsToInfo(t *testing.T) {
	level, err := GetLevel("")
	if err != nil || level != Info {
		t.Fatalf("GetLevel(\"\") = (%v, %v), want (Info, nil)", level, err)
	}
}

func TestGetLevelRejectsUnknown(t *testing.T) {
	if _, err := GetLevel("verbose"); err == nil {
		t.Fatalf("expected an error for an unrecognized level")
	}
}

func TestNilLoggerCallsAreNoOps(t *testing.T) {
	var l Logger
	// Must not panic.
	Debugf(l, map[string]any{"k": "v"}, "msg %d", 1)
	Infof(l, nil, "msg")
	Warnf(l, nil, "msg")
}

func TestNewLoggerReportsItsLevel(t *testing.T) {
	l := New(Debug, "text")
	if l.GetLevel() != Debug {
		t.Fatalf("GetLevel() = %v, want Debug", l.GetLevel())
	}
}
