//go:build darwin

package hotkey

import "golang.design/x/hotkey"

type modifierSpec struct {
	name string
	mod  hotkey.Modifier
}

// modifierTokens maps modifier spellings to the macOS modifiers.
// "cmdorctrl" resolves to Cmd here.
var modifierTokens = map[string]modifierSpec{
	"ctrl":      {"ctrl", hotkey.ModCtrl},
	"control":   {"ctrl", hotkey.ModCtrl},
	"shift":     {"shift", hotkey.ModShift},
	"alt":       {"alt", hotkey.ModOption},
	"option":    {"alt", hotkey.ModOption},
	"cmd":       {"cmd", hotkey.ModCmd},
	"super":     {"cmd", hotkey.ModCmd},
	"cmdorctrl": {"cmd", hotkey.ModCmd},
}
