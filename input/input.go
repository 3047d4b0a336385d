// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package input defines the events consumed by camera
// controllers and other interactive entities.
// Polling the window system is left to the application,
// which forwards what it receives to a Dispatcher.
package input

// Key is the type of keyboard keys.
type Key int

// Keyboard keys.
const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyReturn
	KeyEsc
	KeyTab
	KeyBackspace
	KeyLShift
	KeyRShift
	KeyLCtrl
	KeyRCtrl
	KeyLAlt
	KeyRAlt
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd

	keyCount
)

// Modifier is the type of modifier flags.
type Modifier int

// Modifier flags.
const (
	ModCapsLock Modifier = 1 << iota
	ModShift
	ModCtrl
	ModAlt
)

// Button is the type of pointer buttons.
type Button int

// Pointer buttons.
const (
	BtnUnknown Button = iota
	BtnLeft
	BtnRight
	BtnMiddle
	BtnSide
	BtnForward
	BtnBackward
)

// WindowHandler is the interface that defines the methods
// for handling window events.
type WindowHandler interface {
	// WindowResize is called when the window is resized.
	WindowResize(newWidth, newHeight int)
}

// KeyboardHandler is the interface that defines the methods
// for handling keyboard events.
type KeyboardHandler interface {
	// KeyboardKey is called when a key is pressed/released.
	KeyboardKey(key Key, pressed bool, modMask Modifier)
}

// PointerHandler is the interface that defines the methods
// for handling pointer events.
type PointerHandler interface {
	// PointerMotion is called when the pointer changes position.
	PointerMotion(newX, newY int)

	// PointerButton is called when a button is pressed/released.
	PointerButton(btn Button, pressed bool, x, y int)
}

// ScrollHandler is the interface that defines the methods
// for handling scroll events.
type ScrollHandler interface {
	// Scroll is called when the scroll wheel moves.
	// Positive dy scrolls up (away from the user).
	Scroll(dx, dy float32)
}

// KeyState tracks which keys are held down.
// The zero value has every key released.
type KeyState [keyCount]bool

// Set records key as pressed or released.
// Unknown keys are ignored.
func (s *KeyState) Set(key Key, pressed bool) {
	if key > KeyUnknown && key < keyCount {
		s[key] = pressed
	}
}

// Down reports whether key is held down.
func (s *KeyState) Down(key Key) bool {
	return key > KeyUnknown && key < keyCount && s[key]
}
