package qr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
)

// Decode reads the text encoded in a QR code image.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}

	result, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no QR code found in image: %w", err)
	}
	return result.GetText(), nil
}

// DecodePNG decodes PNG bytes and reads the QR code they contain.
func DecodePNG(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}
	return Decode(img)
}

// Verify checks that the rendered image decodes back to the payload.
func (c *Code) Verify() error {
	got, err := Decode(c.Image)
	if err != nil {
		return err
	}
	if got != c.Payload {
		return fmt.Errorf("decoded %q, want %q", got, c.Payload)
	}
	return nil
}
