//go:build windows

package hotkey

import "golang.design/x/hotkey"

type modifierSpec struct {
	name string
	mod  hotkey.Modifier
}

// modifierTokens maps modifier spellings to the Win32 modifiers.
// "cmdorctrl" resolves to Ctrl here.
var modifierTokens = map[string]modifierSpec{
	"ctrl":      {"ctrl", hotkey.ModCtrl},
	"control":   {"ctrl", hotkey.ModCtrl},
	"shift":     {"shift", hotkey.ModShift},
	"alt":       {"alt", hotkey.ModAlt},
	"option":    {"alt", hotkey.ModAlt},
	"win":       {"win", hotkey.ModWin},
	"super":     {"win", hotkey.ModWin},
	"cmdorctrl": {"ctrl", hotkey.ModCtrl},
}
