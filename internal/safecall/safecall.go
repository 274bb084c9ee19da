// Package safecall runs user-supplied callbacks without letting a panic or
// a runtime.Goexit escape into the caller's goroutine unnoticed.
package safecall

import (
	"github.com/sourcegraph/conc/panics"
)

// Invoker runs a callback and converts abnormal exits into observable events.
type Invoker struct {
	// OnGoexit is called when the callback terminates via runtime.Goexit.
	// The goroutine still exits afterwards; OnGoexit is the last chance to
	// release anyone waiting on the callback's result.
	OnGoexit func()
}

// Invoke runs f.
// If f returns normally, Invoke returns f's error.
// If f panics, the panic is recovered and returned as a *panics.ErrRecovered.
// If f calls runtime.Goexit, OnGoexit is invoked and the exit continues.
func (i *Invoker) Invoke(f func() error) (err error) {
	var (
		returned bool
		caught   *panics.Recovered
	)
	defer func() {
		switch {
		case returned:
		case caught != nil:
			err = caught.AsError()
		default:
			if i.OnGoexit != nil {
				i.OnGoexit()
			}
		}
	}()
	func() {
		defer func() {
			if r := recover(); r != nil {
				rec := panics.NewRecovered(2, r)
				caught = &rec
			}
		}()
		err = f()
		returned = true
	}()
	return
}

// Invoke runs f with a zero Invoker.
func Invoke(f func() error) error {
	var i Invoker
	return i.Invoke(f)
}
