// Package script runs tengo scripts as event listener responses.
//
// Scripts see these builtins:
//
//	raise(channel)          raise an event channel, returns false if unknown
//	fade_in(fader)          start a fade-in, returns false if unknown
//	fade_out(fader)         start a fade-out, returns false if unknown
//	get_float(name)         read a float variable, undefined if unknown
//	set_float(name, value)  write a float variable, returns false if unknown
//	log(args...)            write to the process log
package script

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/commonsolutions/config"
)

// Host resolves the names scripts refer to.
type Host interface {
	Raise(channel string) bool
	FadeIn(fader string) bool
	FadeOut(fader string) bool
	Float(name string) (float64, bool)
	SetFloat(name string, v float64) bool
}

// Response is a compiled script.
type Response struct {
	name     string
	compiled *tengo.Compiled
}

// Load compiles the named script from config.
func Load(name string, host Host) (*Response, error) {
	src, err := config.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src, host)
}

// Compile compiles src with the builtins bound to host.
func Compile(name string, src []byte, host Host) (*Response, error) {
	s := tengo.NewScript(src)
	for _, fn := range builtins(name, host) {
		if err := s.Add(fn.Name, fn); err != nil {
			return nil, fmt.Errorf("script: %s: bind %s: %w", name, fn.Name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Response{name: name, compiled: compiled}, nil
}

func (r *Response) Name() string {
	return r.name
}

// Run executes the script once. Each run gets its own copy of the globals
// so a script may trigger itself through an event.
func (r *Response) Run() error {
	if err := r.compiled.Clone().Run(); err != nil {
		return fmt.Errorf("script: run %s: %w", r.name, err)
	}
	return nil
}

// Func adapts the script to a listener response. Errors are logged.
func (r *Response) Func() func() {
	return func() {
		if err := r.Run(); err != nil {
			log.Print(err)
		}
	}
}

func builtins(name string, host Host) []*tengo.UserFunction {
	return []*tengo.UserFunction{
		{Name: "raise", Value: stringPredicate(host.Raise)},
		{Name: "fade_in", Value: stringPredicate(host.FadeIn)},
		{Name: "fade_out", Value: stringPredicate(host.FadeOut)},
		{Name: "get_float", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			key, err := stringArg(args[0])
			if err != nil {
				return nil, err
			}
			v, ok := host.Float(key)
			if !ok {
				return tengo.UndefinedValue, nil
			}
			return &tengo.Float{Value: v}, nil
		}},
		{Name: "set_float", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			key, err := stringArg(args[0])
			if err != nil {
				return nil, err
			}
			v, ok := tengo.ToFloat64(args[1])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "value", Expected: "float", Found: args[1].TypeName()}
			}
			return boolObject(host.SetFloat(key, v)), nil
		}},
		{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
			parts := make([]string, 0, len(args))
			for _, a := range args {
				s, _ := tengo.ToString(a)
				parts = append(parts, s)
			}
			log.Printf("script %s: %s", name, strings.Join(parts, " "))
			return tengo.UndefinedValue, nil
		}},
	}
}

func stringPredicate(fn func(string) bool) tengo.CallableFunc {
	return func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		s, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		return boolObject(fn(s)), nil
	}
}

// stringArg accepts only a tengo string; tengo.ToString would stringify
// arrays and maps into names.
func stringArg(o tengo.Object) (string, error) {
	s, ok := o.(*tengo.String)
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: o.TypeName()}
	}
	return s.Value, nil
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
