package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// maxImageDim ограничивает длинную сторону снимка перед отправкой модели и в
// хранилище.
const maxImageDim = 1280

const jpegQuality = 85

// NormalizeImage декодирует снимок, исправляет ориентацию по EXIF, ужимает
// до maxImageDim по длинной стороне и перекодирует в JPEG. Возвращает
// данные и итоговый mime-тип.
func NormalizeImage(data []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDim || bounds.Dy() > maxImageDim {
		img = imaging.Fit(img, maxImageDim, maxImageDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}
