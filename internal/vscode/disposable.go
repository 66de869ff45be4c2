package vscode

import "sync"

// Disposable releases a registration. Dispose may be called any number of
// times; only the first call has an effect.
type Disposable interface {
	Dispose()
}

type disposable struct {
	once sync.Once
	fn   func()
}

func (d *disposable) Dispose() {
	d.once.Do(func() {
		if d.fn != nil {
			d.fn()
		}
	})
}

// ToDisposable wraps a release function.
func ToDisposable(fn func()) Disposable {
	return &disposable{fn: fn}
}

// DisposableFrom combines disposables into one that releases each in order.
func DisposableFrom(ds ...Disposable) Disposable {
	return ToDisposable(func() {
		for _, d := range ds {
			if d != nil {
				d.Dispose()
			}
		}
	})
}
