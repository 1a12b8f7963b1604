package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

func TestPNG(t *testing.T) {
	square := []geometry.Point{
		{X: 0, Y: 0}, {X: 10000, Y: 0}, {X: 10000, Y: 10000}, {X: 0, Y: 10000},
	}
	var buf bytes.Buffer
	opts := Options{Width: 128, StrokeWidth: 2, Margin: 8}
	if err := PNG(&buf, [][]geometry.Point{square}, []bool{true}, opts); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 128 {
		t.Errorf("width = %d, want 128", bounds.Dx())
	}
	if bounds.Dy() != 128 {
		t.Errorf("height = %d, want 128", bounds.Dy())
	}

	// The closing segment of the square must be drawn: a pixel on the left
	// edge midway down should be dark.
	gray, _, _, _ := img.At(8, 64).RGBA()
	if gray >= 0x8000 {
		t.Errorf("left edge pixel = %#x, want stroked (dark)", gray)
	}
	// The interior stays white.
	gray, _, _, _ = img.At(64, 64).RGBA()
	if gray < 0x8000 {
		t.Errorf("interior pixel = %#x, want background (light)", gray)
	}
}

func TestPNGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, nil, nil, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
}
