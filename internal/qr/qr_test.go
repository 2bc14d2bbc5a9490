package qr

import (
	"strings"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	p := Payload{
		TicketCode: "6f1c2a34-9d0b-4a7e-8c55-1b2d3e4f5a6b",
		EventID:    12,
		UserID:     345,
	}

	parsed, err := ParsePayload(p.String())
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if parsed != p {
		t.Errorf("round trip changed payload: %+v != %+v", parsed, p)
	}
}

func TestPayloadFormat(t *testing.T) {
	p := Payload{TicketCode: "abc", EventID: 1, UserID: 2}
	if got, want := p.String(), "ticket:abc|event:1|user:2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParsePayloadRejectsGarbage(t *testing.T) {
	bad := []string{
		"",
		"ticket:abc",
		"ticket:abc|event:1",
		"ticket:abc|event:x|user:2",
		"ticket:abc|event:1|user:y",
		"foo:abc|event:1|user:2",
		"ticket:|event:1|user:2",
		"no separators at all",
	}
	for _, s := range bad {
		if _, err := ParsePayload(s); err == nil {
			t.Errorf("ParsePayload(%q) accepted", s)
		}
	}
}

func TestDataURL(t *testing.T) {
	url, err := DataURL(Payload{TicketCode: "abc", EventID: 1, UserID: 2})
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("DataURL prefix wrong: %.40s", url)
	}
	if len(url) < 100 {
		t.Errorf("DataURL suspiciously short: %d bytes", len(url))
	}
}
