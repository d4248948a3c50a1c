package ui

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/commonsolutions/variable"
)

// StringBinding keeps a piece of text in sync with a string variable while it
// is enabled.
type StringBinding struct {
	v     *variable.Variable[string]
	set   func(string)
	unsub func()
}

func NewStringBinding(v *variable.Variable[string], set func(string)) *StringBinding {
	return &StringBinding{v: v, set: set}
}

// BindText binds the label of a text widget, refreshing it immediately.
func BindText(v *variable.Variable[string], text *widget.Text) *StringBinding {
	b := NewStringBinding(v, func(s string) { text.Label = s })
	b.Enable()
	b.Refresh()
	return b
}

// Enable subscribes to variable updates. Enabling twice is a no-op.
func (b *StringBinding) Enable() {
	if b.unsub != nil {
		return
	}
	b.unsub = b.v.OnUpdated(b.Refresh)
}

func (b *StringBinding) Disable() {
	if b.unsub == nil {
		return
	}
	b.unsub()
	b.unsub = nil
}

// Refresh copies the current value into the text.
func (b *StringBinding) Refresh() {
	b.set(b.v.Value())
}
