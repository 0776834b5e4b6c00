package platform

import "image"

// TextureSize is the edge length of the procedurally generated texture.
const TextureSize = 256

// GradientTexture returns a size×size red-green gradient: red grows with x,
// green grows with y, blue is zero.
func GradientTexture(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			offset := img.PixOffset(x, y)
			img.Pix[offset] = uint8(x)
			img.Pix[offset+1] = uint8(y)
			img.Pix[offset+2] = 0
			img.Pix[offset+3] = 0xff
		}
	}
	return img
}
