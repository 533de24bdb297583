package icons

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderDrawsMicrophone(t *testing.T) {
	t.Parallel()

	data, err := Render(ColorRecording)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Size || b.Dy() != Size {
		t.Fatalf("bounds = %v", b)
	}

	r, g, b, a := img.At(Size/2, Size/2-4).RGBA()
	if r>>8 != 220 || g>>8 != 50 || b>>8 != 50 || a>>8 != 255 {
		t.Errorf("center pixel = %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner should be transparent")
	}
}

func TestIconsAreCachedAndDistinct(t *testing.T) {
	t.Parallel()

	idle := Idle()
	if len(idle) == 0 {
		t.Fatal("Idle icon is empty")
	}
	if &Idle()[0] != &idle[0] {
		t.Error("Idle should return the cached slice")
	}
	if bytes.Equal(idle, Recording()) || bytes.Equal(Processing(), Translating()) {
		t.Error("state icons should differ")
	}
}
