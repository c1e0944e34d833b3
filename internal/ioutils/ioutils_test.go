package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"slash and colon", "Song: Part 1/2", "Song_ Part 1_2"},
		{"trailing dots", "Track...", "Track"},
		{"collapsed whitespace", "Name   with  spaces", "Name with spaces"},
		{"question mark", "Why?", "Why_"},
		{"backslash and pipe", `a\b|c`, "a_b_c"},
		{"clean name untouched", "01 - 青い春", "01 - 青い春"},
		{"trailing space", "Name ", "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// encodePNG produces a PNG of the given dimensions for decode tests.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestResizeImage(t *testing.T) {
	svc := NewImageService()
	ctx := context.Background()

	tests := []struct {
		name       string
		srcW, srcH int
		wantW      int
		wantH      int
	}{
		{"landscape scaled to width", 1500, 1000, 1000, 666},
		{"portrait scaled to height", 600, 1200, 500, 1000},
		{"small image kept", 300, 200, 300, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ResizeImage(ctx, encodePNG(t, tt.srcW, tt.srcH), 1000, 1000)
			if err != nil {
				t.Fatalf("ResizeImage: %v", err)
			}
			img, err := jpeg.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output is not JPEG: %v", err)
			}
			got := img.Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeImage_RejectsGarbage(t *testing.T) {
	if _, err := NewImageService().ResizeImage(context.Background(), []byte("not an image"), 500, 500); err == nil {
		t.Error("expected decode error")
	}
}

func TestConvertToJPEG(t *testing.T) {
	out, err := NewImageService().ConvertToJPEG(context.Background(), encodePNG(t, 64, 64))
	if err != nil {
		t.Fatalf("ConvertToJPEG: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("got %dx%d, want 64x64", b.Dx(), b.Dy())
	}
}
