package terminal

import (
	"bytes"
	"image"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantKitty bool
		wantRGB   bool
		wantProg  string
	}{
		{"plain", map[string]string{}, false, true, ""},
		{"truecolor", map[string]string{"COLORTERM": "truecolor", "TERM_PROGRAM": "Apple_Terminal"}, false, true, "Apple_Terminal"},
		{"apple terminal", map[string]string{"TERM_PROGRAM": "Apple_Terminal"}, false, false, "Apple_Terminal"},
		{"kitty opt in", map[string]string{kittyEnv: "yes"}, true, true, "kitty"},
		{"kitty opt out", map[string]string{kittyEnv: "off", "TERM_PROGRAM": "WezTerm"}, false, true, "WezTerm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := detect(func(key string) string { return tt.env[key] })
			if caps.SupportsKittyGraphics != tt.wantKitty {
				t.Errorf("kitty: got %v, want %v", caps.SupportsKittyGraphics, tt.wantKitty)
			}
			if caps.SupportsRGB != tt.wantRGB {
				t.Errorf("rgb: got %v, want %v", caps.SupportsRGB, tt.wantRGB)
			}
			if caps.TermProgram != tt.wantProg {
				t.Errorf("program: got %q, want %q", caps.TermProgram, tt.wantProg)
			}
		})
	}
}

func TestResetDisablesMouse(t *testing.T) {
	var buf bytes.Buffer
	reset(&buf)
	for _, seq := range []string{"\033[?25h", "\033[?1002l", "\033[?1006l"} {
		if !strings.Contains(buf.String(), seq) {
			t.Errorf("missing %q", seq)
		}
	}
}

func TestEncodeImageForKitty(t *testing.T) {
	if got := EncodeImageForKitty(nil, 4, 2); got != "" {
		t.Errorf("nil image: got %q", got)
	}

	out := EncodeImageForKitty(image.NewRGBA(image.Rect(0, 0, 64, 64)), 6, 3)
	if !strings.HasPrefix(out, "\x1b_Ga=T,f=100,c=6,r=3,") {
		t.Errorf("unexpected header: %q", out[:min(len(out), 32)])
	}
	if !strings.HasSuffix(out, "\x1b\\") {
		t.Error("sequence not terminated")
	}
}

func TestFitKeepsAspect(t *testing.T) {
	w, h := fit(600, 300, 100, 100)
	if w != 100 || h != 50 {
		t.Errorf("wide: got %dx%d, want 100x50", w, h)
	}
	w, h = fit(300, 600, 100, 100)
	if w != 50 || h != 100 {
		t.Errorf("tall: got %dx%d, want 50x100", w, h)
	}
}
