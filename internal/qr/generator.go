// Package qr renders join links as QR code images for invitation assets.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 512

type Generator struct {
	size     int
	recovery qrcode.RecoveryLevel
}

func NewGenerator() *Generator {
	return &Generator{
		size:     defaultSize,
		recovery: qrcode.High,
	}
}

// Generate returns the join URL encoded as a PNG.
func (g *Generator) Generate(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, g.recovery, g.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
