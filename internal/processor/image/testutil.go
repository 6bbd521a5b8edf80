package image

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

// createTestImage creates a test image with a gradient pattern.
// The gradient makes it easy to verify transformations visually.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8(255 * x / width)
			g := uint8(255 * y / height)
			b := uint8(128)
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return img
}

// encodeTestJPEG encodes an image as JPEG and returns a reader.
func encodeTestJPEG(img image.Image, quality int) io.Reader {
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	return bytes.NewReader(buf.Bytes())
}

// encodeTestPNG encodes an image as PNG and returns a reader.
func encodeTestPNG(img image.Image) io.Reader {
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return bytes.NewReader(buf.Bytes())
}

// createTestJPEG creates a JPEG image of the specified size.
func createTestJPEG(width, height int) io.Reader {
	img := createTestImage(width, height)
	return encodeTestJPEG(img, 85)
}

// createTestPNG creates a PNG image of the specified size.
func createTestPNG(width, height int) io.Reader {
	img := createTestImage(width, height)
	return encodeTestPNG(img)
}

// createTestGIF creates a GIF image of the specified size.
func createTestGIF(width, height int) io.Reader {
	var buf bytes.Buffer
	gif.Encode(&buf, createTestImage(width, height), nil)
	return bytes.NewReader(buf.Bytes())
}

// createTestBMP creates a BMP image of the specified size.
func createTestBMP(width, height int) io.Reader {
	var buf bytes.Buffer
	bmp.Encode(&buf, createTestImage(width, height))
	return bytes.NewReader(buf.Bytes())
}

// createInvalidImage returns bytes that are not a decodable image.
func createInvalidImage() io.Reader {
	return bytes.NewReader([]byte("this is not an image"))
}
