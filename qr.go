package scrub

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCodeImage encodes content as a square QR code of size pixels, used as the
// outro call to action.
func QRCodeImage(content string, size int) (image.Image, error) {
	if content == "" {
		return nil, fmt.Errorf("qr code: empty content")
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}
	return q.Image(size), nil
}
