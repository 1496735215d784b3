package share

import (
	"net/url"
	"strings"

	"github.com/freshline/backend/internal/domain/shared"
)

// Config holds the messaging deep link settings
type Config struct {
	// BaseURL is the deep link prefix, e.g. https://wa.me
	BaseURL string
	// DefaultPhone receives shares when no recipient is given
	DefaultPhone string
}

// Channel builds messaging deep links from pre-formatted text. The text
// itself is composed upstream; the channel only handles addressing and
// encoding.
type Channel struct {
	config Config
}

// NewChannel creates a sharing channel
func NewChannel(config Config) *Channel {
	return &Channel{config: config}
}

// DeepLink returns a link that opens the messaging app with the text
// prefilled. An empty phone falls back to the configured default; with
// no default either, the link opens a recipient picker.
func (c *Channel) DeepLink(text, phone string) (string, error) {
	if text == "" {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Share text is required")
	}

	if phone == "" {
		phone = c.config.DefaultPhone
	}
	phone = sanitizePhone(phone)

	base := strings.TrimSuffix(c.config.BaseURL, "/")
	link := base + "/" + phone + "?text=" + url.QueryEscape(text)
	if phone == "" {
		link = base + "/?text=" + url.QueryEscape(text)
	}
	return link, nil
}

// sanitizePhone strips everything but digits so numbers copied with
// spaces, dashes or a leading + still produce a valid link
func sanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
