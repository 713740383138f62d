package assessment

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/abhisek/wardtrain/internal/registry"
)

var (
	// ErrInvalidBank is returned for bank files that fail validation.
	ErrInvalidBank = errors.New("invalid question bank")

	// ErrUnknownModule is returned when a bank refers to a module that is
	// neither registered nor described by the bank itself.
	ErrUnknownModule = errors.New("unknown module")

	// ErrEmptyBank is returned when an attempt is started without questions.
	ErrEmptyBank = errors.New("question bank is empty")
)

//go:embed banks/*.json
var builtinBanks embed.FS

// Bank is the question set of one module. Module is set when the bank file
// carries its own descriptor.
type Bank struct {
	ModuleID  string           `json:"moduleId"`
	Module    *registry.Module `json:"module,omitempty"`
	Questions []Question       `json:"questions"`
}

// ParseBank validates raw against the bank schema and decodes it.
func ParseBank(raw []byte) (Bank, error) {
	if err := validateBankJSON(raw); err != nil {
		return Bank{}, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}

	var b Bank
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bank{}, fmt.Errorf("%w: %w", ErrInvalidBank, err)
	}

	if b.Module != nil && b.Module.ID != b.ModuleID {
		return Bank{}, fmt.Errorf("%w: module id %q does not match moduleId %q",
			ErrInvalidBank, b.Module.ID, b.ModuleID)
	}
	for _, q := range b.Questions {
		if q.CorrectAnswer >= len(q.Options) {
			return Bank{}, fmt.Errorf("%w: question %d: correct answer %d out of range (%d options)",
				ErrInvalidBank, q.ID, q.CorrectAnswer, len(q.Options))
		}
	}
	return b, nil
}

// Catalog maps module IDs to their question banks.
type Catalog struct {
	banks map[string]Bank
}

// NewCatalog creates a catalog holding the given banks.
func NewCatalog(banks ...Bank) *Catalog {
	c := &Catalog{banks: make(map[string]Bank)}
	for _, b := range banks {
		c.Add(b)
	}
	return c
}

// BuiltinCatalog returns a catalog of the shipped question banks.
func BuiltinCatalog() (*Catalog, error) {
	c := NewCatalog()
	entries, err := fs.ReadDir(builtinBanks, "banks")
	if err != nil {
		return nil, fmt.Errorf("read builtin banks: %w", err)
	}
	for _, e := range entries {
		raw, err := builtinBanks.ReadFile(path.Join("banks", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		b, err := ParseBank(raw)
		if err != nil {
			return nil, fmt.Errorf("builtin bank %s: %w", e.Name(), err)
		}
		c.Add(b)
	}
	return c, nil
}

// Add stores b, replacing any bank for the same module.
func (c *Catalog) Add(b Bank) {
	c.banks[b.ModuleID] = b
}

// Bank returns the bank for moduleID.
func (c *Catalog) Bank(moduleID string) (Bank, bool) {
	b, ok := c.banks[moduleID]
	return b, ok
}

// Len returns the number of banks.
func (c *Catalog) Len() int {
	return len(c.banks)
}

// Install adds b to the catalog. A descriptor carried by the bank is
// registered in reg (replacing any module with the same ID); otherwise the
// module must already be registered.
func (c *Catalog) Install(b Bank, reg *registry.Registry) error {
	if b.Module != nil {
		reg.Add(*b.Module)
	} else if _, ok := reg.ByID(b.ModuleID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModule, b.ModuleID)
	}
	c.Add(b)
	return nil
}

// LoadFile parses the bank file at p and installs it.
func (c *Catalog) LoadFile(p string, reg *registry.Registry) (Bank, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return Bank{}, fmt.Errorf("read bank: %w", err)
	}
	b, err := ParseBank(raw)
	if err != nil {
		return Bank{}, fmt.Errorf("%s: %w", p, err)
	}
	if err := c.Install(b, reg); err != nil {
		return Bank{}, fmt.Errorf("%s: %w", p, err)
	}
	return b, nil
}
