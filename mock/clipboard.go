package mock

import "github.com/fwojciec/bouncer"

// Compile-time interface verification.
var _ bouncer.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of bouncer.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
