// Package frames loads the still images that make up the video and hands
// them out as handles that resolve asynchronously.
package frames

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Frame is a decoded raster. Row 0 is the top row of the image.
type Frame struct {
	Width, Height int
	Stride        int // Bytes per row
	BytesPerPixel int
	Pix           []uint8
}

// NewFrame allocates an RGBA frame filled with the given gray level.
func NewFrame(width, height int, gray uint8) *Frame {
	f := &Frame{
		Width:         width,
		Height:        height,
		Stride:        width * 4,
		BytesPerPixel: 4,
		Pix:           make([]uint8, width*height*4),
	}
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i] = gray
		f.Pix[i+1] = gray
		f.Pix[i+2] = gray
		f.Pix[i+3] = 0xff
	}
	return f
}

// Intensity returns the first channel of the pixel at (x, y).
// For RGBA rasters that is red; for gray rasters it is the luminance.
func (f *Frame) Intensity(x, y int) uint8 {
	return f.Pix[y*f.Stride+x*f.BytesPerPixel]
}

// SetGray writes a gray level into every colour channel of (x, y).
func (f *Frame) SetGray(x, y int, v uint8) {
	i := y*f.Stride + x*f.BytesPerPixel
	n := f.BytesPerPixel
	if n == 4 {
		n = 3 // keep alpha
	}
	for c := 0; c < n; c++ {
		f.Pix[i+c] = v
	}
}

// SizeMatches reports whether the frame has the given dimensions.
func (f *Frame) SizeMatches(width, height int) bool {
	return f != nil && f.Width == width && f.Height == height
}

// RGBA returns the pixels as a row-major colour slice, suitable for texture upload.
func (f *Frame) RGBA() []color.RGBA {
	out := make([]color.RGBA, f.Width*f.Height)
	for y := 0; y < f.Height; y++ {
		row := y * f.Stride
		for x := 0; x < f.Width; x++ {
			i := row + x*f.BytesPerPixel
			switch f.BytesPerPixel {
			case 1:
				v := f.Pix[i]
				out[y*f.Width+x] = color.RGBA{R: v, G: v, B: v, A: 0xff}
			default:
				out[y*f.Width+x] = color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
			}
		}
	}
	return out
}

// FromImage converts a decoded image into a Frame.
// RGBA and Gray images anchored at the origin are used without copying.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	switch src := img.(type) {
	case *image.RGBA:
		if b.Min == (image.Point{}) {
			return &Frame{Width: b.Dx(), Height: b.Dy(), Stride: src.Stride, BytesPerPixel: 4, Pix: src.Pix}
		}
	case *image.Gray:
		if b.Min == (image.Point{}) {
			return &Frame{Width: b.Dx(), Height: b.Dy(), Stride: src.Stride, BytesPerPixel: 1, Pix: src.Pix}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Frame{Width: b.Dx(), Height: b.Dy(), Stride: dst.Stride, BytesPerPixel: 4, Pix: dst.Pix}
}

// Image returns the frame as an image without copying the pixels.
func (f *Frame) Image() image.Image {
	r := image.Rect(0, 0, f.Width, f.Height)
	if f.BytesPerPixel == 1 {
		return &image.Gray{Pix: f.Pix, Stride: f.Stride, Rect: r}
	}
	return &image.RGBA{Pix: f.Pix, Stride: f.Stride, Rect: r}
}
