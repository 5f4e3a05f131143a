// Package credentials manages the pool of ElevenLabs API keys used for
// voice-over generation. Keys are loaded once from a text file of
// "account:secret" lines and consumed strictly in file order: a key that
// hit its quota is never retried within the same run.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

var (
	ErrNoKeysAvailable = errors.New("no API keys available")
	ErrPoolExhausted   = errors.New("API key pool exhausted")
)

// Key is a single API credential. Account is the label from the keys file
// (usually an email address) and is only used for logging and reports.
type Key struct {
	Account string
	Secret  string
}

// Pool holds the ordered keys and a cursor pointing at the active one.
// The cursor only moves forward; once it passes the last key the pool is
// exhausted for the rest of the run.
type Pool struct {
	keys   []Key
	cursor int
}

// NewPool creates a pool from an ordered key list.
func NewPool(keys []Key) (*Pool, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeysAvailable
	}
	return &Pool{keys: keys}, nil
}

// LoadFile reads "account:secret" lines from the keys file. Malformed
// lines are skipped with a warning so one bad line doesn't abort startup;
// an empty result does.
func LoadFile(path string) (*Pool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keys file: %w", err)
	}
	defer file.Close()

	var keys []Key
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			log.Printf("Warning: skipping malformed key line %d in %s", lineNo, path)
			continue
		}

		keys = append(keys, Key{
			Account: strings.TrimSpace(parts[0]),
			Secret:  strings.TrimSpace(parts[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading keys file: %w", err)
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoKeysAvailable, path)
	}

	return &Pool{keys: keys}, nil
}

// Current returns the active key, or ErrPoolExhausted once the cursor has
// passed the end.
func (p *Pool) Current() (Key, error) {
	if p.cursor >= len(p.keys) {
		return Key{}, ErrPoolExhausted
	}
	return p.keys[p.cursor], nil
}

// Advance moves the cursor to the next key. Calling it after exhaustion is
// a no-op; the pool never wraps around to already-rejected keys.
func (p *Pool) Advance() {
	if p.cursor < len(p.keys) {
		p.cursor++
	}
}

// Size returns the number of keys loaded.
func (p *Pool) Size() int {
	return len(p.keys)
}

// Remaining returns how many keys have not been tried yet, including the
// current one.
func (p *Pool) Remaining() int {
	return len(p.keys) - p.cursor
}

// Keys returns a copy of every loaded key, in file order. Used by the
// balance checker, which inspects all keys rather than rotating.
func (p *Pool) Keys() []Key {
	out := make([]Key, len(p.keys))
	copy(out, p.keys)
	return out
}
