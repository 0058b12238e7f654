package export

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format — формат выходных изображений.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat принимает имя формата или расширение без учёта регистра.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "", "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("unsupported image format: %s", s)
	}
}

// Ext — расширение файла с точкой.
func (f Format) Ext() string {
	if f == "" {
		return ".png"
	}
	return "." + string(f)
}

// ImageWriter сохраняет одно изображение в path.
type ImageWriter interface {
	Write(img image.Image, path string) error
}

// FileWriter кодирует изображения в файлы одного формата. Существующие файлы
// перезаписываются, каталог должен существовать.
type FileWriter struct {
	Format Format
}

func (w FileWriter) Write(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	if err := w.encode(bw, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w FileWriter) encode(bw *bufio.Writer, img image.Image) error {
	switch w.Format {
	case BMP:
		return bmp.Encode(bw, img)
	case TIFF:
		return tiff.Encode(bw, img, &tiff.Options{Compression: tiff.Deflate})
	case PNG, "":
		return png.Encode(bw, img)
	default:
		return fmt.Errorf("unsupported image format: %s", w.Format)
	}
}
