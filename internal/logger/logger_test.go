package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_IsNop(t *testing.T) {
	l := New()
	if l.Log == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("fresh logger should discard everything")
	}
}

func TestInit_Levels(t *testing.T) {
	cases := []struct {
		level       string
		wantDebug   bool
		wantInfo    bool
		expectError bool
	}{
		{level: "Info", wantInfo: true},
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "WARN"},
		{level: "loud", expectError: true},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			l := New()
			err := l.Init(tc.level)
			if tc.expectError {
				if err == nil {
					t.Fatalf("Init(%q) expected error", tc.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("Init(%q): %v", tc.level, err)
			}
			core := l.Log.Core()
			if got := core.Enabled(zapcore.DebugLevel); got != tc.wantDebug {
				t.Errorf("debug enabled = %v; want %v", got, tc.wantDebug)
			}
			if got := core.Enabled(zapcore.InfoLevel); got != tc.wantInfo {
				t.Errorf("info enabled = %v; want %v", got, tc.wantInfo)
			}
		})
	}
}
