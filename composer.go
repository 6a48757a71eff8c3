package backdrop

import (
	"image"
	"image/draw"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/gogpu/backdrop/internal/blend"
	"github.com/gogpu/backdrop/text"
)

// Composer produces background images with centered text in a randomly
// chosen font.
//
// Composer is safe for concurrent use.
type Composer struct {
	selector *text.FontSelector
	opts     composerOptions

	mu  sync.Mutex
	rng *rand.Rand // nil uses the global source
}

// Result describes one composed image.
type Result struct {
	// Image is the final opaque RGBA image.
	Image *image.RGBA

	// Font is the family name of the chosen font.
	Font string

	// Size is the chosen font size in pixels per em.
	// Zero when the image had no room for the text.
	Size float64

	// TextRect is where the text canvas was composited.
	// Empty when nothing was drawn.
	TextRect image.Rectangle

	// Foreground is the color the text was drawn in.
	Foreground Color
}

// NewComposer creates a Composer drawing fonts from provider.
//
// Example:
//
//	c := backdrop.NewComposer(text.NewSystemProvider())
//	img, err := c.Seed(1920, 1080, backdrop.White)
func NewComposer(provider text.FontProvider, opts ...Option) *Composer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	selOpts := []text.SelectorOption{text.WithSourceOptions(o.sourceOpts...)}
	c := &Composer{opts: o}
	if o.seeded {
		// Separate streams so font and size choices do not share a lock.
		selOpts = append(selOpts, text.WithRand(rand.New(rand.NewPCG(o.seed, 1))))
		c.rng = rand.New(rand.NewPCG(o.seed, 2))
	}
	c.selector = text.NewFontSelector(provider, selOpts...)
	return c
}

// Text returns the text the composer draws.
func (c *Composer) Text() string {
	return c.opts.text
}

// Seed creates a width x height image filled with bg and draws the
// composer's text centered on it in a random font, using bg.Inverse() as
// the text color.
func (c *Composer) Seed(width, height int, bg Color) (*image.RGBA, error) {
	res, err := c.Compose(width, height, bg)
	if err != nil {
		return nil, err
	}
	return res.Image, nil
}

// Compose is Seed with details about the chosen font and placement.
func (c *Composer) Compose(width, height int, bg Color) (*Result, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg.ToRGBA()), image.Point{}, draw.Src)

	src, err := c.selector.PickRandom()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	font := src.Parsed()
	res := &Result{Image: img, Font: src.Name(), Foreground: bg.Inverse()}

	box, err := text.Measure(c.opts.text, font)
	if err != nil {
		return nil, err
	}

	size, ok := c.pickSize(box, font.UnitsPerEm(), width, height)
	if !ok {
		Logger().Debug("nothing to draw",
			"font", res.Font, "width", width, "height", height, "box", box.Rect)
		c.logResult(res, bg)
		return res, nil
	}
	res.Size = size

	canvas, err := text.Rasterize(c.opts.text, font, box,
		text.WithSize(size),
		text.WithHinting(c.opts.hinting),
		text.WithAntialias(c.opts.antialias),
	)
	if err != nil {
		return nil, err
	}

	if !canvas.Empty() {
		x0 := (width - canvas.Width) / 2
		y0 := (height - canvas.Height) / 2
		r := image.Rect(x0, y0, x0+canvas.Width, y0+canvas.Height)
		blend.DrawMask(img, r, canvas.Alpha(), image.Point{}, res.Foreground.ToRGBA(), c.opts.mode)
		res.TextRect = r.Intersect(img.Bounds())
	}

	c.logResult(res, bg)
	return res, nil
}

// pickSize chooses a font size so the rasterized text fits inside the
// margin. The size is uniform in [minSize, fit]; when even minSize does not
// fit, the largest fitting size is used. It reports false when the text
// has no extent or the image cannot hold a single pixel of it.
func (c *Composer) pickSize(box text.TextBoundingBox, upem, width, height int) (float64, bool) {
	if box.Empty() || upem <= 0 {
		return 0, false
	}

	// Rasterize rounds the canvas up and pads it by one pixel.
	availW := float64(width)*c.opts.margin - 2
	availH := float64(height)*c.opts.margin - 2
	fit := math.Min(
		availW*float64(upem)/float64(box.Width()),
		availH*float64(upem)/float64(box.Height()),
	)
	if fit <= 0 || math.IsNaN(fit) {
		return 0, false
	}
	fit = math.Min(fit, text.MaxRasterSize)

	if fit <= c.opts.minSize {
		Logger().Debug("text clamped below minimum size",
			"fit", fit, "min", c.opts.minSize)
		return fit, true
	}
	return c.opts.minSize + c.randFloat()*(fit-c.opts.minSize), true
}

func (c *Composer) randFloat() float64 {
	if c.rng == nil {
		return rand.Float64()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64()
}

func (c *Composer) logResult(res *Result, bg Color) {
	b := res.Image.Bounds()
	Logger().Info("seeded image",
		"width", b.Dx(),
		"height", b.Dy(),
		"background", bg.String(),
		"foreground", res.Foreground.String(),
		"font", res.Font,
		"size", res.Size,
	)
}

// Update refreshes an existing image. Re-rendering over a previous image is
// not defined yet, so Update returns an opaque RGBA copy of img unchanged
// and logs the background it detected.
func (c *Composer) Update(img image.Image) (*image.RGBA, error) {
	if img == nil {
		return nil, ErrNilImage
	}

	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	Logger().Info("update leaves image unchanged",
		"width", b.Dx(),
		"height", b.Dy(),
		"background", SampleBackground(out).String(),
	)
	return out, nil
}

// SampleBackground guesses the background color of img from its four
// corners, returning the most common one. Ties go to the top-left corner.
// An empty image yields Black.
func SampleBackground(img image.Image) Color {
	b := img.Bounds()
	if b.Empty() {
		return Black
	}

	corners := [4]Color{
		FromColor(img.At(b.Min.X, b.Min.Y)),
		FromColor(img.At(b.Max.X-1, b.Min.Y)),
		FromColor(img.At(b.Min.X, b.Max.Y-1)),
		FromColor(img.At(b.Max.X-1, b.Max.Y-1)),
	}

	best, bestN := corners[0], 0
	for _, c := range corners {
		n := 0
		for _, o := range corners {
			if o == c {
				n++
			}
		}
		if n > bestN {
			best, bestN = c, n
		}
	}
	return best
}
