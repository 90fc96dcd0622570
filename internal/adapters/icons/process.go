package icons

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

const (
	iconBox  = 400
	padRatio = 0.1
)

// prepare normalizes a decoded icon for card rendering: fit into a
// square box keeping aspect ratio, trim fully transparent borders, then
// pad so symbols keep breathing room when scaled onto a card.
func prepare(src image.Image) *image.NRGBA {
	img := fitToBox(src, iconBox)
	img = trimTransparent(img)
	return pad(img, padRatio)
}

// fitToBox scales src into a box×box canvas, centered, preserving
// aspect ratio.
func fitToBox(src image.Image, box int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	nw, nh := box, box
	if w >= h {
		nh = max(1, h*box/w)
	} else {
		nw = max(1, w*box/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, box, box))
	off := image.Pt((box-nw)/2, (box-nh)/2)
	target := image.Rectangle{Min: off, Max: off.Add(image.Pt(nw, nh))}
	xdraw.CatmullRom.Scale(dst, target, src, b, xdraw.Over, nil)
	return dst
}

// trimTransparent crops the image to the bounding box of its
// non-transparent pixels. Fully transparent images come back unchanged.
func trimTransparent(img *image.NRGBA) *image.NRGBA {
	bbox, ok := opaqueBounds(img)
	if !ok {
		return img
	}
	return img.SubImage(bbox).(*image.NRGBA)
}

func opaqueBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X - 1, b.Min.Y - 1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// pad surrounds the image with transparent margin proportional to its
// size.
func pad(img *image.NRGBA, ratio float64) *image.NRGBA {
	b := img.Bounds()
	px := int(float64(b.Dx()) * ratio)
	py := int(float64(b.Dy()) * ratio)

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()+2*px, b.Dy()+2*py))
	xdraw.Draw(dst, image.Rect(px, py, px+b.Dx(), py+b.Dy()), img, b.Min, xdraw.Over)
	return dst
}
