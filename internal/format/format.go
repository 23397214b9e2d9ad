package format

import (
	"fmt"
	"strings"
	"time"
)

// FmtCurrency formats amount in minor units for basic currencies.
// Example: FmtCurrency(1234550, "LKR", "si") => "රු. 12,345.50"
func FmtCurrency(minor int64, currency, lang string) string {
	currency = strings.ToUpper(currency)
	switch currency {
	case "LKR":
		sym := "Rs."
		switch strings.ToLower(lang) {
		case "si":
			sym = "රු."
		case "ta":
			sym = "ரூ."
		}
		neg := minor < 0
		if neg {
			minor = -minor
		}
		major := minor / 100
		cents := minor % 100
		out := sym + " " + thousandSep(major) + fmt.Sprintf(".%02d", cents)
		if neg {
			return "-" + out
		}
		return out
	case "USD":
		// assume cents; format with 2 decimals
		neg := minor < 0
		if neg {
			minor = -minor
		}
		major := minor / 100
		cents := minor % 100
		out := "$" + thousandSep(major) + fmt.Sprintf(".%02d", cents)
		if neg {
			return "-" + out
		}
		return out
	default:
		// generic minor units
		return fmt.Sprintf("%s %s", currency, thousandSep(minor))
	}
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}

// FmtDate formats time in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "si", "ta":
		return t.Format("2006-01-02")
	default:
		return t.Format("Jan 2, 2006")
	}
}
