package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestKeepAlternate(t *testing.T) {
	frames := []string{"f0", "f1", "f2", "f3", "f4"}
	kept := KeepAlternate(frames)

	want := []string{"f0", "f2", "f4"}
	if !reflect.DeepEqual(kept, want) {
		t.Errorf("KeepAlternate = %v, want %v", kept, want)
	}

	kept = KeepAlternate([]string{"f0", "f1"})
	if !reflect.DeepEqual(kept, []string{"f0"}) {
		t.Errorf("KeepAlternate on pair = %v, want [f0]", kept)
	}
}

func TestListFrames_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame_2.png", "frame_0.png", "frame_1.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	frames, err := ListFrames(dir, "*.png")
	if err != nil {
		t.Fatal(err)
	}

	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if filepath.Base(frames[0]) != "frame_0.png" || filepath.Base(frames[2]) != "frame_2.png" {
		t.Errorf("frames not sorted: %v", frames)
	}
}

func TestListFrames_EmptyDirErrors(t *testing.T) {
	if _, err := ListFrames(t.TempDir(), "*.png"); err == nil {
		t.Error("expected an error for a directory without frames")
	}
}

func TestSaveLoadGrayFrameRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")

	frame := mat.NewDense(8, 8, nil)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			frame.Set(y, x, float64(y*30+x))
		}
	}

	if err := SaveGrayFrame(path, frame); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadGrayFrame(path)
	if err != nil {
		t.Fatal(err)
	}

	h, w := loaded.Dims()
	if h != 8 || w != 8 {
		t.Fatalf("dimensions = %dx%d, want 8x8", h, w)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if loaded.At(y, x) != frame.At(y, x) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", y, x, loaded.At(y, x), frame.At(y, x))
			}
		}
	}
}
