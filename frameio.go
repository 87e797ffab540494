package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	_ "image/jpeg"

	"gonum.org/v1/gonum/mat"
)

// ListFrames enumerates the frame files in dir matching the glob
// pattern, in name order. Frames are expected to carry a sequential
// numeric suffix so lexicographic order is temporal order.
func ListFrames(dir string, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no frames matching %s in %s", pattern, dir)
	}

	sort.Strings(matches)
	return matches, nil
}

// KeepAlternate drops every other frame, keeping the even-indexed
// ones. The dropped frames are the ones the interpolator rebuilds.
func KeepAlternate(frames []string) []string {
	kept := make([]string, 0, (len(frames)+1)/2)
	for i := 0; i < len(frames); i += 2 {
		kept = append(kept, frames[i])
	}
	return kept
}

// LoadGrayFrame decodes an image file into a single-channel float64
// intensity grid in [0, 255].
func LoadGrayFrame(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	h := bounds.Dy()
	w := bounds.Dx()
	if h == 0 || w == 0 {
		return nil, fmt.Errorf("empty image: %s", path)
	}

	frame := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			frame.Set(y, x, float64(g.Y))
		}
	}
	return frame, nil
}

// SaveGrayFrame writes an intensity grid as an 8-bit grayscale PNG,
// clamping values to [0, 255].
func SaveGrayFrame(path string, frame *mat.Dense) error {
	h, w := frame.Dims()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := frame.At(y, x)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v + 0.5)})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	return f.Sync()
}
