package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// BarcodeDecoder extracts a barcode from an image, best-effort. It is only
// consulted when the caller did not supply an explicit barcode.
type BarcodeDecoder interface {
	Decode(imageBytes []byte) (string, error)
}

// ZxingBarcodeService decodes EAN/UPC barcodes from packaging photos.
type ZxingBarcodeService struct {
	reader gozxing.Reader
}

func NewZxingBarcodeService() *ZxingBarcodeService {
	return &ZxingBarcodeService{reader: oned.NewMultiFormatUPCEANReader(nil)}
}

func (s *ZxingBarcodeService) Decode(imageBytes []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("build bitmap: %w", err)
	}
	result, err := s.reader.Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no barcode found: %w", err)
	}
	return result.GetText(), nil
}
