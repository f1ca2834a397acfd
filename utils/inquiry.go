package utils

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
)

const chatBaseURL = "https://wa.me/"

// FormatRupiah renders 1250000 as "Rp 1.250.000". Amounts are rounded to whole rupiah.
func FormatRupiah(amount float64) string {
	return strings.ReplaceAll(fmt.Sprintf("Rp %s", humanize.Comma(int64(math.Round(amount)))), ",", ".")
}

// InquiryMessage is the pre-filled chat text for a product detail page.
func InquiryMessage(p models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello, I'm interested in %s %s", p.Brand, p.Name)
	if p.Volume != "" {
		fmt.Fprintf(&b, " (%s)", p.Volume)
	}
	if p.Price != nil {
		fmt.Fprintf(&b, " listed at %s", FormatRupiah(*p.Price))
	}
	b.WriteString(". Is it still available?")
	return b.String()
}

// InquiryURL builds the chat deep link. Non-digits are dropped from phone.
func InquiryURL(phone string, p models.Product) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", fmt.Errorf("chat phone number is not configured")
	}
	q := url.Values{}
	q.Set("text", InquiryMessage(p))
	return chatBaseURL + digits + "?" + q.Encode(), nil
}
