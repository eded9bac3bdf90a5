// Package copyutil copies values, falling back to a weaker copy when the
// requested one fails.
//
// A shallow copy that fails falls back to the original value. A deep copy
// that fails falls back to a shallow copy. Whether a failure is returned as
// an error ("die") or only logged as a warning is chosen per call; shallow
// copies default to returning errors and deep copies default to warnings.
package copyutil

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/getlantern/deepcopy"
	"github.com/hashicorp/go-multierror"
	"github.com/ohsu-comp-bio/simbatch/logger"
)

// ErrUncopyable is returned by ShallowCopy for channels, funcs and unsafe
// pointers, and by DeepCopy when the copy would not equal the original.
var ErrUncopyable = errors.New("value cannot be copied")

// CopyFunc is a copy primitive.
type CopyFunc func(obj interface{}) (interface{}, error)

// CopyError describes a failed copy. The fallback value is returned alongside it.
type CopyError struct {
	// Op is "shallow" or "deep".
	Op  string
	Err error
}

func (e *CopyError) Error() string {
	switch e.Op {
	case "deep":
		return "could not perform deep copy, performing shallow instead: " + e.Err.Error()
	default:
		return "could not perform shallow copy, returning original object: " + e.Err.Error()
	}
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// Copier performs copies with explicit copy primitives.
type Copier struct {
	Shallow CopyFunc
	Deep    CopyFunc
	Log     *logger.Logger
}

// NewCopier returns a Copier using ShallowCopy and DeepCopy.
func NewCopier() *Copier {
	return &Copier{
		Shallow: ShallowCopy,
		Deep:    DeepCopy,
		Log:     logger.NewSubLogger("copy"),
	}
}

type options struct {
	verbose bool
	die     bool
}

// Option configures a single copy call.
type Option func(*options)

// Verbose enables debug logging of successful copies. It never changes the result.
func Verbose(b bool) Option {
	return func(o *options) {
		o.verbose = b
	}
}

// Die selects whether a failure is returned as an error (true) or only
// logged as a warning (false).
func Die(b bool) Option {
	return func(o *options) {
		o.die = b
	}
}

// Strict is shorthand for Die(true).
func Strict() Option { return Die(true) }

// Lenient is shorthand for Die(false).
func Lenient() Option { return Die(false) }

func apply(o options, opts []Option) options {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Cp returns a shallow copy of obj. On failure obj itself is returned.
// Failures are returned as *CopyError unless Die(false) is given.
func (c *Copier) Cp(obj interface{}, opts ...Option) (interface{}, error) {
	o := apply(options{die: true}, opts)

	out, err := c.Shallow(obj)
	if err != nil {
		cerr := &CopyError{Op: "shallow", Err: err}
		if o.die {
			return obj, cerr
		}
		c.Log.Warn(cerr.Error(), "type", fmt.Sprintf("%T", obj))
		return obj, nil
	}

	if o.verbose {
		c.Log.Debug("Shallow copy", "type", fmt.Sprintf("%T", obj))
	}
	return out, nil
}

// Dcp returns a deep copy of obj. On failure a shallow copy is returned
// instead, made with the same options. Failures are only logged unless
// Die(true) is given.
func (c *Copier) Dcp(obj interface{}, opts ...Option) (interface{}, error) {
	o := apply(options{die: false}, opts)

	out, err := c.Deep(obj)
	if err != nil {
		fallback, serr := c.Cp(obj, Die(o.die), Verbose(o.verbose))
		if o.die {
			if serr != nil {
				return fallback, &CopyError{Op: "deep", Err: multierror.Append(err, serr)}
			}
			return fallback, &CopyError{Op: "deep", Err: err}
		}
		c.Log.Warn((&CopyError{Op: "deep", Err: err}).Error(), "type", fmt.Sprintf("%T", obj))
		return fallback, nil
	}

	if o.verbose {
		c.Log.Debug("Deep copy", "type", fmt.Sprintf("%T", obj))
	}
	return out, nil
}

var std = NewCopier()

// Shallow returns a shallow copy of obj using the default primitives.
// It is strict by default.
func Shallow[T any](obj T, opts ...Option) (T, error) {
	out, err := std.Cp(obj, opts...)
	return as(out, obj), err
}

// Deep returns a deep copy of obj using the default primitives.
// It is lenient by default.
func Deep[T any](obj T, opts ...Option) (T, error) {
	out, err := std.Dcp(obj, opts...)
	return as(out, obj), err
}

func as[T any](v interface{}, fallback T) T {
	if t, ok := v.(T); ok {
		return t
	}
	return fallback
}

// ShallowCopy copies one level of obj. Pointers get a new pointee holding
// a copy of the old one, maps and slices get new containers holding the
// same elements. Other values are returned as they are, since assigning
// them already copies them.
func ShallowCopy(obj interface{}) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}

	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return nil, fmt.Errorf("%w: %s", ErrUncopyable, v.Type())

	case reflect.Ptr:
		if v.IsNil() {
			return obj, nil
		}
		n := reflect.New(v.Elem().Type())
		n.Elem().Set(v.Elem())
		return n.Interface(), nil

	case reflect.Map:
		if v.IsNil() {
			return obj, nil
		}
		n := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			n.SetMapIndex(iter.Key(), iter.Value())
		}
		return n.Interface(), nil

	case reflect.Slice:
		if v.IsNil() {
			return obj, nil
		}
		n := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(n, v)
		return n.Interface(), nil
	}
	return obj, nil
}

// DeepCopy copies obj through a JSON round trip. Cycles, channels and funcs
// make it fail, as does any copy which differs from obj: unexported fields,
// integers held in interface values, and the like.
func DeepCopy(obj interface{}) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}

	dst := reflect.New(reflect.TypeOf(obj))
	if err := deepcopy.Copy(dst.Interface(), obj); err != nil {
		return nil, err
	}
	out := dst.Elem().Interface()
	if !reflect.DeepEqual(obj, out) {
		return nil, fmt.Errorf("%w: deep copy of %T lost data", ErrUncopyable, obj)
	}
	return out, nil
}
