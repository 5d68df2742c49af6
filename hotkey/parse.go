package hotkey

import (
	"fmt"
	"sort"
	"strings"

	"golang.design/x/hotkey"
)

// Combo is a parsed global key combination.
type Combo struct {
	Mods []hotkey.Modifier
	Key  hotkey.Key

	// normalized is the canonical spelling used for duplicate
	// detection, e.g. "ctrl+shift+space".
	normalized string
}

// Normalized returns the canonical spelling of the combination.
func (c Combo) Normalized() string { return c.normalized }

// ParseCombo parses a combination like "ctrl+shift+space" or
// "cmdorctrl+shift+w". Modifiers come first, the final part is the key.
// At least one modifier is required for a global binding.
func ParseCombo(s string) (Combo, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return Combo{}, fmt.Errorf("combination needs at least one modifier and a key")
	}

	var c Combo
	seen := make(map[string]bool)
	names := make([]string, 0, len(parts)-1)

	for _, part := range parts[:len(parts)-1] {
		part = strings.TrimSpace(part)
		spec, ok := modifierTokens[part]
		if !ok {
			return Combo{}, fmt.Errorf("unknown modifier %q", part)
		}
		if seen[spec.name] {
			return Combo{}, fmt.Errorf("duplicate modifier %q", spec.name)
		}
		seen[spec.name] = true
		names = append(names, spec.name)
		c.Mods = append(c.Mods, spec.mod)
	}

	keyTok := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyTokens[keyTok]
	if !ok {
		return Combo{}, fmt.Errorf("unknown key %q", keyTok)
	}
	c.Key = key

	sort.Strings(names)
	c.normalized = strings.Join(append(names, keyTok), "+")
	return c, nil
}

// keyTokens maps key names to the cross-platform key constants.
var keyTokens = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,

	"space":  hotkey.KeySpace,
	"enter":  hotkey.KeyReturn,
	"return": hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
}
