package qr

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Payload is what gets encoded into a ticket's QR image. Scanners send
// the decoded ticket code back for check-in, so the format has to stay
// stable across releases.
type Payload struct {
	TicketCode string
	EventID    int
	UserID     int
}

func (p Payload) String() string {
	return fmt.Sprintf("ticket:%s|event:%d|user:%d", p.TicketCode, p.EventID, p.UserID)
}

func ParsePayload(s string) (Payload, error) {
	var p Payload
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return p, fmt.Errorf("malformed payload: %q", s)
	}
	for _, part := range parts {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			return p, fmt.Errorf("malformed payload segment: %q", part)
		}
		switch key {
		case "ticket":
			p.TicketCode = value
		case "event":
			id, err := strconv.Atoi(value)
			if err != nil {
				return p, fmt.Errorf("invalid event id in payload: %q", value)
			}
			p.EventID = id
		case "user":
			id, err := strconv.Atoi(value)
			if err != nil {
				return p, fmt.Errorf("invalid user id in payload: %q", value)
			}
			p.UserID = id
		default:
			return p, fmt.Errorf("unknown payload segment: %q", part)
		}
	}
	if p.TicketCode == "" {
		return p, fmt.Errorf("payload missing ticket code: %q", s)
	}
	return p, nil
}

// DataURL renders the payload as a 256x256 PNG data URL suitable for
// embedding directly in an <img> tag or an email body.
func DataURL(p Payload) (string, error) {
	png, err := qrcode.Encode(p.String(), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
