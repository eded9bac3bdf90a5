package sigfig

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Result holds formatted output. A scalar input produces a single value;
// a slice or array produces one value per element, in order.
type Result struct {
	Values   []string
	Sequence bool
}

// Scalar returns the first formatted value, or "" if there is none.
func (r Result) Scalar() string {
	if len(r.Values) == 0 {
		return ""
	}
	return r.Values[0]
}

// String returns the scalar, or the values as a parenthesized list for
// sequences.
func (r Result) String() string {
	if !r.Sequence {
		return r.Scalar()
	}
	return "(" + strings.Join(r.Values, ", ") + ")"
}

// FormatValue formats any Go value. Slices and arrays are formatted element
// by element. Numeric kinds are rounded; anything else is printed with
// fmt.Sprint.
func FormatValue(v interface{}, o Options) Result {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]string, rv.Len())
		for i := range out {
			out[i] = formatScalar(rv.Index(i), o)
		}
		return Result{Values: out, Sequence: true}
	}
	return Result{Values: []string{formatScalar(rv, o)}}
}

func formatScalar(rv reflect.Value, o Options) string {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return fmt.Sprint(rv.Interface())
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FormatInt(rv.Int(), o)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return format(number{f: float64(u)}, o)
		}
		return FormatInt(int64(u), o)
	case reflect.Float32, reflect.Float64:
		return Format(rv.Float(), o)
	case reflect.Invalid:
		return fmt.Sprint(nil)
	}
	if rv.CanInterface() {
		return fmt.Sprint(rv.Interface())
	}
	return rv.String()
}

// plain returns the plain string form of a number: integers without a
// decimal point, floats in their shortest form.
func plain(n number) string {
	if n.integral {
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f)
}

// formatFloat returns the shortest representation of f which parses back to
// the same value. Whole numbers keep a trailing ".0"; exponent form is used
// below 1e-4 and from 1e16 up.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		e := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return e
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
