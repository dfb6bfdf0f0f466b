package present

import (
	"context"
	"crypto/md5"
	"fmt"
	"image"
	"image/color" // This is the standard library color package
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/card"
)

// Artist turns card images into ANSI art
type Artist struct {
	Width    int
	Height   int
	CacheDir string // Empty disables the cache
	Client   *http.Client
	Logger   *zap.Logger
}

// NewArtist creates an artist producing art of width x height cells
func NewArtist(width, height int, cacheDir string, logger *zap.Logger) *Artist {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Artist{
		Width:    width,
		Height:   height,
		CacheDir: cacheDir,
		Client:   http.DefaultClient,
		Logger:   logger,
	}
}

// Render returns ANSI art for the card and whether it shows the card's own
// image. Cards without an image reference, or whose image cannot be fetched,
// get the card back placeholder.
func (a *Artist) Render(ctx context.Context, c card.Card) (string, bool) {
	if c.ImageURL == "" {
		return a.Placeholder(), false
	}

	art, err := a.fromURL(ctx, c.ImageURL)
	if err != nil {
		a.Logger.Warn("card image unavailable",
			zap.String("card", c.ID), zap.String("url", c.ImageURL), zap.Error(err))
		return a.Placeholder(), false
	}
	return art, true
}

// Placeholder returns the card back art
func (a *Artist) Placeholder() string {
	return imageToAnsi(CardBack(), a.Width, a.Height)
}

// fromURL fetches and converts an image, going through the cache when set
func (a *Artist) fromURL(ctx context.Context, url string) (string, error) {
	var cachePath string
	if a.CacheDir != "" {
		cachePath = filepath.Join(a.CacheDir, fmt.Sprintf("%x-%dx%d.ansi", md5.Sum([]byte(url)), a.Width, a.Height))
		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	img, err := a.fetchImage(ctx, url)
	if err != nil {
		return "", err
	}
	art := imageToAnsi(img, a.Width, a.Height)

	if cachePath != "" {
		if err := os.MkdirAll(a.CacheDir, 0755); err != nil {
			a.Logger.Debug("art cache unavailable", zap.Error(err))
		} else if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
			a.Logger.Debug("failed to cache art", zap.Error(err))
		}
	}
	return art, nil
}

// fetchImage downloads and decodes an image
func (a *Artist) fetchImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// CardBack draws the generic card back used when a card has no image:
// a dark frame around a brown field with a blue oval in the middle
func CardBack() image.Image {
	const w, h = 63, 88
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	frame := color.RGBA{R: 24, G: 16, B: 12, A: 255}
	field := color.RGBA{R: 122, G: 78, B: 40, A: 255}
	oval := color.RGBA{R: 40, G: 70, B: 140, A: 255}

	cx, cy := float64(w)/2, float64(h)/2
	rx, ry := float64(w)*0.32, float64(h)*0.36
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x < 3 || y < 3 || x >= w-3 || y >= h-3:
				img.Set(x, y, frame)
			default:
				dx, dy := (float64(x)-cx)/rx, (float64(y)-cy)/ry
				if dx*dx+dy*dy <= 1 {
					img.Set(x, y, oval)
				} else {
					img.Set(x, y, field)
				}
			}
		}
	}
	return img
}

// imageToAnsi converts an image to ANSI art of width x height cells
func imageToAnsi(img image.Image, width, height int) string {
	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			// Get the four pixels that will make up one character cell
			col1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			col2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := colorfulToColor(averageColor(col1, col2))
			bg := colorfulToColor(averageColor(col3, col4))

			buffer.WriteString(ansiColorString('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255} // Return black for out-of-bounds
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// colorfulToColor converts a colorful.Color to a standard color.Color
func colorfulToColor(c colorful.Color) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ansiColorString formats a character with truecolor ANSI codes
func ansiColorString(char rune, fg, bg color.Color) string {
	// RGBA() returns values in range 0-65535
	r1, g1, b1, _ := fg.RGBA()
	r2, g2, b2, _ := bg.RGBA()

	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1>>8, g1>>8, b1>>8, r2>>8, g2>>8, b2>>8, char)
}
