//go:build linux

package hotkey

import "golang.design/x/hotkey"

type modifierSpec struct {
	name string
	mod  hotkey.Modifier
}

// modifierTokens maps modifier spellings to the X11 modifiers.
// Mod1 is Alt, Mod4 is Super. "cmdorctrl" resolves to Ctrl here.
var modifierTokens = map[string]modifierSpec{
	"ctrl":      {"ctrl", hotkey.ModCtrl},
	"control":   {"ctrl", hotkey.ModCtrl},
	"shift":     {"shift", hotkey.ModShift},
	"alt":       {"alt", hotkey.Mod1},
	"option":    {"alt", hotkey.Mod1},
	"super":     {"super", hotkey.Mod4},
	"win":       {"super", hotkey.Mod4},
	"cmdorctrl": {"ctrl", hotkey.ModCtrl},
}
