package internal

import (
	"github.com/AllenDang/giu"
	"vincit.fi/image-viewer/common/logger"
	"vincit.fi/image-viewer/ui/giu/internal/guiapi"
)

type KeyDef struct {
	Name      string
	Key       giu.Key
	Modifiers guiapi.Modifiers
	Action    func()
}

// KeyManager maps key presses to viewer actions. A key may have several
// definitions that differ by modifiers.
type KeyManager struct {
	KeyMap map[giu.Key][]*KeyDef
}

func NewKeyManager() *KeyManager {
	return &KeyManager{
		KeyMap: map[giu.Key][]*KeyDef{},
	}
}

func (s *KeyManager) Bind(name string, key giu.Key, action func()) {
	s.BindWithModifiers(name, key, guiapi.Modifiers{}, action)
}

func (s *KeyManager) BindWithModifiers(name string, key giu.Key, modifiers guiapi.Modifiers, action func()) {
	s.KeyMap[key] = append(s.KeyMap[key], &KeyDef{
		Name:      name,
		Key:       key,
		Modifiers: modifiers,
		Action:    action,
	})
}

// HandleKeys runs the actions of pressed keys. Returns true if any key
// was handled.
func (s *KeyManager) HandleKeys(modifiers guiapi.Modifiers) bool {
	handled := false
	for key, defs := range s.KeyMap {
		if !giu.IsKeyPressed(key) {
			continue
		}
		for _, def := range defs {
			if def.Modifiers == modifiers {
				logger.Debug.Printf("Key action: %s", def.Name)
				def.Action()
				handled = true
			}
		}
	}
	return handled
}

func ResolveModifiers() guiapi.Modifiers {
	return guiapi.Modifiers{
		Shift:   giu.IsKeyDown(giu.KeyLeftShift) || giu.IsKeyDown(giu.KeyRightShift),
		Control: giu.IsKeyDown(giu.KeyLeftControl) || giu.IsKeyDown(giu.KeyRightControl),
		Alt:     giu.IsKeyDown(giu.KeyLeftAlt) || giu.IsKeyDown(giu.KeyRightAlt),
	}
}
