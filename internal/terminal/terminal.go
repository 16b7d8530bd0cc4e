package terminal

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/nfnt/resize"
)

const (
	kittyEnv   = "PLATTER_USE_KITTY_GRAPHICS"
	kittyChunk = 4096
)

type Capabilities struct {
	SupportsKittyGraphics bool
	SupportsRGB           bool
	TermProgram           string
}

func DetectCapabilities() *Capabilities {
	return detect(os.Getenv)
}

func detect(getenv func(string) string) *Capabilities {
	caps := &Capabilities{
		TermProgram: getenv("TERM_PROGRAM"),
	}

	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		caps.SupportsRGB = true
	default:
		caps.SupportsRGB = caps.TermProgram != "Apple_Terminal"
	}

	// kitty graphics are opt-in; placing images inside a redrawn tui is
	// fragile on terminals that only half implement the protocol
	switch strings.ToLower(getenv(kittyEnv)) {
	case "1", "true", "yes", "on":
		caps.SupportsKittyGraphics = true
		if caps.TermProgram == "" {
			caps.TermProgram = "kitty"
		}
	}

	return caps
}

// Reset restores the cursor, colors, main screen and mouse reporting in
// case the program exits without bubbletea tearing down.
func Reset() {
	reset(os.Stdout)
	os.Stdout.Sync()
}

func reset(w io.Writer) {
	for _, seq := range []string{
		"\033[?25h",
		"\033[0m",
		"\033[?1049l",
		"\033[?1000l",
		"\033[?1002l",
		"\033[?1003l",
		"\033[?1006l",
	} {
		io.WriteString(w, seq)
	}
}

// EncodeImageForKitty fits img into cols by rows cells and returns the
// kitty graphics escape sequence that draws it at the cursor. The cursor is
// left where it was, so the caller pads the cells underneath itself.
func EncodeImageForKitty(img image.Image, cols int, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ""
	}

	// cells are roughly 10x20 pixels
	w, h := fit(bounds.Dx(), bounds.Dy(), cols*10, rows*20)
	scaled := resize.Resize(uint(w), uint(h), img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return ""
	}
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	var out strings.Builder
	for start := 0; start < len(encoded); start += kittyChunk {
		end := min(start+kittyChunk, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		if start == 0 {
			fmt.Fprintf(&out, "\x1b_Ga=T,f=100,c=%d,r=%d,C=1,q=2,m=%d;%s\x1b\\", cols, rows, more, encoded[start:end])
		} else {
			fmt.Fprintf(&out, "\x1b_Gm=%d;%s\x1b\\", more, encoded[start:end])
		}
	}

	return out.String()
}

func fit(width int, height int, maxWidth int, maxHeight int) (int, int) {
	aspect := float64(width) / float64(height)
	w, h := maxWidth, maxHeight
	if aspect > float64(maxWidth)/float64(maxHeight) {
		h = int(float64(maxWidth) / aspect)
	} else {
		w = int(float64(maxHeight) * aspect)
	}
	return max(w, 10), max(h, 10)
}
