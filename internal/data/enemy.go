package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyKind is one visual variant of the horde. Kinds differ only in sprite.
type EnemyKind struct {
	Name   string `yaml:"name"`
	Sprite int    `yaml:"sprite"`
}

type enemyListFile struct {
	Enemies []EnemyKind `yaml:"enemies"`
}

// EnemyTable holds the enemy kinds in file order. The spawn director picks
// uniformly among them.
type EnemyTable struct {
	kinds []EnemyKind
}

// Count returns the number of kinds.
func (t *EnemyTable) Count() int {
	return len(t.kinds)
}

// At returns the i-th kind.
func (t *EnemyTable) At(i int) EnemyKind {
	return t.kinds[i]
}

// Get looks a kind up by name.
func (t *EnemyTable) Get(name string) (EnemyKind, bool) {
	for _, k := range t.kinds {
		if k.Name == name {
			return k, true
		}
	}
	return EnemyKind{}, false
}

// DefaultEnemyTable returns the three built-in kinds.
func DefaultEnemyTable() *EnemyTable {
	return &EnemyTable{kinds: []EnemyKind{
		{Name: "green", Sprite: 8},
		{Name: "red", Sprite: 12},
		{Name: "skin", Sprite: 20},
	}}
}

// LoadEnemyTable loads enemy kinds from a YAML file.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy_list: %w", err)
	}
	t, err := ParseEnemyTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parse enemy_list: %w", err)
	}
	return t, nil
}

// ParseEnemyTable decodes and validates an enemy list document.
func ParseEnemyTable(raw []byte) (*EnemyTable, error) {
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if len(f.Enemies) == 0 {
		return nil, errors.New("no enemies defined")
	}
	seen := make(map[string]bool, len(f.Enemies))
	for i, k := range f.Enemies {
		if k.Name == "" {
			return nil, fmt.Errorf("enemy #%d: missing name", i)
		}
		if seen[k.Name] {
			return nil, fmt.Errorf("enemy %q: duplicate name", k.Name)
		}
		if k.Sprite < 0 {
			return nil, fmt.Errorf("enemy %q: negative sprite index", k.Name)
		}
		seen[k.Name] = true
	}
	return &EnemyTable{kinds: f.Enemies}, nil
}
