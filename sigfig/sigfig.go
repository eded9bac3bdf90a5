// Package sigfig renders numbers with a fixed number of significant figures,
// optionally scaled with SI-style suffixes or with thousands separators.
//
// Formatting never fails: any value which cannot be rounded (NaN, infinities,
// non-numeric input) is rendered in its plain string form instead.
package sigfig

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ohsu-comp-bio/simbatch/logger"
)

var log = logger.NewSubLogger("sigfig")

// NoRounding disables rounding: values are printed in plain form.
// Any negative Sigfigs value has the same effect.
const NoRounding = -1

// Options controls formatting.
type Options struct {
	// Sigfigs is the number of significant figures, or NoRounding.
	Sigfigs int
	// SI scales the value by the largest power of a thousand not exceeding
	// it and appends a suffix, e.g. 32433 -> "32.433k".
	SI bool
	// Sep inserts thousands separators, e.g. 32433 -> "32,433".
	Sep bool
	// KeepInts prints values larger than 10^Sigfigs as whole numbers instead
	// of rounding them. Ignored when SI is set.
	KeepInts bool
}

// DefaultOptions returns Options with five significant figures.
func DefaultOptions() Options {
	return Options{Sigfigs: 5}
}

type threshold struct {
	val    float64
	suffix string
}

// Checked in order, first match wins.
var thresholds = []threshold{
	{1e18, "e18"},
	{1e15, "e15"},
	{1e12, "t"},
	{1e9, "b"},
	{1e6, "m"},
	{1e3, "k"},
}

var errNotFinite = errors.New("value is not finite")

// number is a value to format. Integers keep their integer form when
// printed plainly.
type number struct {
	f        float64
	i        int64
	integral bool
}

// Format formats x.
func Format(x float64, o Options) string {
	return format(number{f: x}, o)
}

// FormatInt formats x.
func FormatInt(x int64, o Options) string {
	return format(number{f: float64(x), i: x, integral: true}, o)
}

// FormatAll formats each value of xs. The result has the same length and order.
func FormatAll(xs []float64, o Options) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = Format(x, o)
	}
	return out
}

func format(n number, o Options) string {
	suffix := ""
	if o.SI {
		for _, t := range thresholds {
			if math.Abs(n.f) >= t.val {
				n = number{f: n.f / t.val}
				suffix = t.suffix
				break
			}
		}
	}

	s, err := round(n, suffix, o)
	if err != nil {
		log.Debug("Falling back to plain formatting", "value", n.f, "error", err)
		return plain(n)
	}
	return s
}

func round(n number, suffix string, o Options) (string, error) {
	x := n.f
	sigfigs := o.Sigfigs

	switch {
	case x == 0:
		return "0", nil

	case sigfigs < 0:
		return plain(n) + suffix, nil

	case !o.SI && o.KeepInts && x > pow10(sigfigs):
		if math.IsInf(x, 0) {
			return "", errNotFinite
		}
		if o.Sep {
			return group(strconv.FormatFloat(math.RoundToEven(x), 'f', 0, 64)), nil
		}
		return strconv.FormatFloat(x, 'f', 0, 64), nil
	}

	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "", errNotFinite
	}

	mag := magnitude(math.Abs(x))
	factor := pow10(sigfigs - mag - 1)
	if math.IsInf(factor, 0) || factor == 0 {
		return "", fmt.Errorf("scale factor 10^%d out of range", sigfigs-mag-1)
	}
	scaled := math.RoundToEven(x * factor)
	if math.IsInf(scaled, 0) {
		return "", errNotFinite
	}
	x = scaled / factor
	// Rounding small negatives gives -0, which prints as "-0".
	if x == 0 {
		x = 0
	}

	digits := abs(mag) + max(0, sigfigs-max(0, mag)-1) + 1
	if x < 0 {
		digits++
	}
	if math.Abs(x) < 1 {
		digits++
	}
	decimals := max(0, sigfigs-mag-1)

	s := fmt.Sprintf("%*.*f", digits, decimals, x)
	if o.Sep {
		var err error
		s, err = regroup(s, decimals)
		if err != nil {
			return "", err
		}
	}
	return s + suffix, nil
}

// magnitude returns floor(log10(a)) for a > 0, corrected for rounding
// error in Log10 near exact powers of ten.
func magnitude(a float64) int {
	m := int(math.Floor(math.Log10(a)))
	if m < 308 && pow10(m+1) <= a {
		m++
	}
	if m > -324 && pow10(m) > a {
		m--
	}
	return m
}

// pow10 returns the double nearest 10^e. math.Pow10 is only exact for
// small exponents. Out of range exponents give 0 or +Inf.
func pow10(e int) float64 {
	f, _ := strconv.ParseFloat("1e"+strconv.Itoa(e), 64)
	return f
}

// regroup re-parses a fixed-point string and inserts thousands separators.
func regroup(s string, decimals int) (string, error) {
	s = strings.TrimSpace(s)
	if decimals > 0 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", err
		}
		return groupFloat(f), nil
	}
	if strings.Trim(s, "+-0123456789") != "" {
		return "", fmt.Errorf("not an integer: %q", s)
	}
	// "-0" parses to 0.
	if strings.TrimLeft(s, "+-0") == "" {
		return "0", nil
	}
	return group(s), nil
}

// group inserts a comma every three digits of the integer part of a
// decimal string.
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}

// groupFloat renders f in its plain form with thousands separators.
// Exponent forms are left alone.
func groupFloat(f float64) string {
	s := formatFloat(f)
	if strings.ContainsAny(s, "en") {
		return s
	}
	return group(s)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
