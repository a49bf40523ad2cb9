package whatsapp

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrDisabled     = errors.New("whatsapp gateway disabled")
	ErrNotConnected = errors.New("whatsapp client not connected")
)

// Gateway delivers a text message to a phone number. Destinations must
// already carry the country code; transport mechanics belong to the
// implementation.
type Gateway interface {
	SendText(ctx context.Context, phone, body string) error
}

// NormalizePhone strips separators and prepends the country code when the
// number does not already start with it.
func NormalizePhone(countryCode, phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if countryCode != "" && !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}
	return digits
}

type disabledGateway struct{}

// NewDisabledGateway is used when no provider is configured; every send
// reports ErrDisabled so batch callers can aggregate it as a failure.
func NewDisabledGateway() Gateway {
	return disabledGateway{}
}

func (disabledGateway) SendText(ctx context.Context, phone, body string) error {
	return ErrDisabled
}
