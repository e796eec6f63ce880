package control

import "sync"

// Console is a text console styled through a single attribute word.
type Console interface {
	Attributes() (uint16, error)
	SetAttributes(word uint16) error
}

// MemoryConsole keeps the attribute word in memory. It records every word
// written so callers can inspect the sequence.
type MemoryConsole struct {
	mu      sync.Mutex
	word    uint16
	History []uint16
}

// NewMemoryConsole creates a console whose current attributes are word.
func NewMemoryConsole(word uint16) *MemoryConsole {
	return &MemoryConsole{word: word}
}

func (m *MemoryConsole) Attributes() (uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.word, nil
}

func (m *MemoryConsole) SetAttributes(word uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.word = word
	m.History = append(m.History, word)
	return nil
}

// Word returns the current attribute word.
func (m *MemoryConsole) Word() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.word
}
