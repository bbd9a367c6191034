// Package ansiart turns gallery thumbnails into half-block ANSI art for the terminal.
package ansiart

import (
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Default art size in terminal cells. Thumbnails are 16:9.
const (
	DefaultWidth  = 48
	DefaultHeight = 14
)

// Load returns ANSI art for imagePath, generating it into cacheDir on first use.
// The cache key covers the path, size and modification time of the image.
func Load(cacheDir, imagePath string, width, height int) (string, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return "", fmt.Errorf("thumbnail not found: %w", err)
	}

	key := fmt.Sprintf("%s|%d|%d|%d", imagePath, info.ModTime().UnixNano(), width, height)
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", sha256.Sum256([]byte(key))))

	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	art, err := Generate(imagePath, width, height)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to cache: %w", err)
	}

	return art, nil
}

// Generate decodes an image file and converts it to ANSI art
func Generate(imagePath string, width, height int) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	return Convert(img, width, height), nil
}

// Convert renders img as width x height cells. Each cell is an upper half
// block: the top two pixels set the foreground, the bottom two the background.
func Convert(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			fg := average(colorAt(resized, x, y), colorAt(resized, x+1, y))
			bg := average(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buffer.WriteString(cell('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// colorAt returns the color at a coordinate, black outside the bounds
func colorAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	var c color.Color = color.RGBA{0, 0, 0, 255}
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		c = img.At(x, y)
	}
	col, _ := colorful.MakeColor(c)
	return col
}

// average blends colors in linear RGB
func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		lr, lg, lb := c.LinearRgb()
		r += lr
		g += lg
		b += lb
	}
	n := float64(len(colors))
	return colorful.LinearRgb(r/n, g/n, b/n).Clamped()
}

// cell formats one character with 24-bit foreground and background colors
func cell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m", r1, g1, b1, r2, g2, b2, char)
}

// StripAnsi removes ANSI escape sequences from a string
func StripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// VisibleWidth is the number of runes printed once escapes are removed
func VisibleWidth(s string) int {
	return len([]rune(StripAnsi(s)))
}

// WrapText wraps text to a specified width
func WrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	var currentLine string
	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= width:
			currentLine += " " + word
		default:
			result = append(result, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
