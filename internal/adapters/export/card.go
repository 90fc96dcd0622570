package export

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

const (
	borderWidth = 10

	// Display-only randomness: slots wobble inside their zone and icons
	// tilt so cards do not look machine-stamped.
	positionJitter = 0.03
	circleMaxTilt  = 20.0
	squareMaxTilt  = 30.0
)

var (
	cardBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	cardBorder     = color.NRGBA{A: 255}
)

// renderCard rasterizes one card face at pixels×pixels. Icons are
// indexed by symbol id; layout supplies one slot per symbol on the
// card. rng drives jitter and tilt and may be nil for fully
// deterministic output.
func renderCard(symbols []int, icons []ports.Icon, layout domain.Layout, shape ports.CardShape, pixels int, rng domain.RNG) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, pixels, pixels))
	fillRect(img, img.Bounds(), cardBackground)

	maxTilt := circleMaxTilt
	if shape == ports.ShapeSquare {
		maxTilt = squareMaxTilt
	}

	for i, sym := range symbols {
		if i >= len(layout) || sym >= len(icons) {
			break
		}
		slot := layout[i]
		x, y := slot.X, slot.Y
		tilt := 0.0
		if rng != nil {
			x += (rng.Float64()*2 - 1) * positionJitter
			y += (rng.Float64()*2 - 1) * positionJitter
			tilt = (rng.Float64()*2 - 1) * maxTilt
		}
		drawIcon(img, icons[sym].Image, x, y, slot.Scale, tilt)
	}

	if shape == ports.ShapeSquare {
		strokeSquareBorder(img)
	} else {
		clipToCircle(img)
		strokeCircleBorder(img)
	}
	return img
}

// drawIcon composites src onto dst scaled to scale×(card min dimension)
// and rotated by tilt degrees, centered at the normalized position
// (x, y). Scaling and rotation happen in a single affine transform.
func drawIcon(dst *image.NRGBA, src image.Image, x, y, scale, tilt float64) {
	b := src.Bounds()
	side := float64(min(dst.Bounds().Dx(), dst.Bounds().Dy()))
	target := scale * side
	k := target / float64(max(b.Dx(), b.Dy()))

	theta := tilt * math.Pi / 180
	sin, cos := math.Sincos(theta)

	cx := float64(b.Min.X+b.Max.X) / 2
	cy := float64(b.Min.Y+b.Max.Y) / 2
	px := x * float64(dst.Bounds().Dx())
	py := y * float64(dst.Bounds().Dy())

	// dst = T(px,py) · R(theta) · S(k) · T(-cx,-cy), applied to src.
	a := k * cos
	bb := -k * sin
	d := k * sin
	e := k * cos
	m := f64.Aff3{
		a, bb, px - a*cx - bb*cy,
		d, e, py - d*cx - e*cy,
	}
	xdraw.BiLinear.Transform(dst, m, src, b, xdraw.Over, nil)
}

// clipToCircle repaints everything outside the card's inner circle with
// the background, the raster analogue of an alpha mask.
func clipToCircle(img *image.NRGBA) {
	b := img.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	inner := math.Min(cx, cy) - borderWidth

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if math.Hypot(dx, dy) > inner {
				img.SetNRGBA(x, y, cardBackground)
			}
		}
	}
}

// strokeCircleBorder draws the border ring centered on the card.
func strokeCircleBorder(img *image.NRGBA) {
	b := img.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	radius := math.Min(cx, cy) - float64(borderWidth)/2

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if math.Abs(math.Hypot(dx, dy)-radius) <= float64(borderWidth)/2 {
				img.SetNRGBA(x, y, cardBorder)
			}
		}
	}
}

func strokeSquareBorder(img *image.NRGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	fillRect(img, image.Rect(0, 0, w, borderWidth), cardBorder)
	fillRect(img, image.Rect(0, h-borderWidth, w, h), cardBorder)
	fillRect(img, image.Rect(0, 0, borderWidth, h), cardBorder)
	fillRect(img, image.Rect(w-borderWidth, 0, w, h), cardBorder)
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}
