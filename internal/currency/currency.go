package currency

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts as grouped display strings ("Rs. 1,234")
// and parses them back. Format never fails: non-finite input renders
// as the zero amount. Parse never fails: garbage yields 0. The two are
// inverses only for values Format itself produced, since the default
// rendering rounds to whole rupees.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

func New(symbol string) *Formatter {
	if symbol == "" {
		symbol = "Rs."
	}
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

func (f *Formatter) Format(amount float64, withDecimals bool) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	if withDecimals {
		return f.symbol + " " + f.printer.Sprintf("%v", number.Decimal(amount,
			number.MinFractionDigits(2),
			number.MaxFractionDigits(2),
		))
	}

	return f.symbol + " " + f.printer.Sprintf("%v", number.Decimal(math.Round(amount),
		number.MaxFractionDigits(0),
	))
}

// FormatDetailed is the admin-facing two-decimal variant.
func (f *Formatter) FormatDetailed(amount float64) string {
	return f.Format(amount, true)
}

func (f *Formatter) Parse(display string) float64 {
	s := strings.TrimSpace(display)
	s = strings.ReplaceAll(s, f.symbol, "")
	s = strings.ReplaceAll(s, "Rs.", "")
	s = strings.ReplaceAll(s, "Rs", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
