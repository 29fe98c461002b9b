package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcalc/toml"
)

// keyNames maps lowercase names usable in [keys] to terminal keys
var keyNames = buildKeyNames()

func buildKeyNames() map[string]tcell.Key {
	names := map[string]tcell.Key{
		"enter":      tcell.KeyEnter,
		"escape":     tcell.KeyEscape,
		"esc":        tcell.KeyEscape,
		"backspace":  tcell.KeyBackspace,
		"backspace2": tcell.KeyBackspace2,
		"delete":     tcell.KeyDelete,
		"insert":     tcell.KeyInsert,
		"tab":        tcell.KeyTab,
		"home":       tcell.KeyHome,
		"end":        tcell.KeyEnd,
		"up":         tcell.KeyUp,
		"down":       tcell.KeyDown,
		"left":       tcell.KeyLeft,
		"right":      tcell.KeyRight,
	}
	for i := 0; i < 26; i++ {
		names[fmt.Sprintf("ctrl-%c", 'a'+i)] = tcell.KeyCtrlA + tcell.Key(i)
	}
	for i := 0; i < 12; i++ {
		names[fmt.Sprintf("f%d", i+1)] = tcell.KeyF1 + tcell.Key(i)
	}
	return names
}

// KeyByName resolves a [keys] section name, case-insensitive
func KeyByName(name string) (tcell.Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
//
//	[symbols]
//	"x" = "multiplication"
//	"c" = "all_clear"
//
//	[keys]
//	ctrl-y = "copy"
//	delete = "none"
//
// Only sections present are populated; unknown actions or key names fail
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	raw, err := toml.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{}

	if section, ok := raw["symbols"]; ok {
		table, ok := section.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section [symbols]: expected table, got %T", section)
		}
		kt.Symbols = make(map[string]Command, len(table))
		for sym, val := range table {
			cmd, err := resolveAction("symbols", sym, val)
			if err != nil {
				return nil, err
			}
			kt.Symbols[sym] = cmd
		}
	}

	if section, ok := raw["keys"]; ok {
		table, ok := section.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("section [keys]: expected table, got %T", section)
		}
		kt.Keys = make(map[tcell.Key]Command, len(table))
		for name, val := range table {
			k, ok := KeyByName(name)
			if !ok {
				return nil, fmt.Errorf("[keys] unknown key name: %q", name)
			}
			cmd, err := resolveAction("keys", name, val)
			if err != nil {
				return nil, err
			}
			kt.Keys[k] = cmd
		}
	}

	for name := range raw {
		if name != "symbols" && name != "keys" {
			return nil, fmt.Errorf("unknown keymap section %q", name)
		}
	}

	return kt, nil
}

func resolveAction(section, key string, val any) (Command, error) {
	name, ok := val.(string)
	if !ok {
		return Command{}, fmt.Errorf("[%s] key %q: value must be string, got %T", section, key, val)
	}
	cmd, ok := ActionEntry(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return Command{}, fmt.Errorf("[%s] key %q: unknown action: %q", section, key, name)
	}
	return cmd, nil
}

// MergeKeyTable returns base overridden by the non-nil maps of override
// Entries bound to "none" remove the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	for k, v := range override.Symbols {
		if v.Type == CommandNone {
			delete(result.Symbols, k)
		} else {
			result.Symbols[k] = v
		}
	}
	for k, v := range override.Keys {
		if v.Type == CommandNone {
			delete(result.Keys, k)
		} else {
			result.Keys[k] = v
		}
	}
	return result
}
