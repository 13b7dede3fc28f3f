package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for damage formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir/combat.
// A missing directory is not an error: every hook falls back to its base value.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(filepath.Join(scriptsDir, "combat")); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load combat scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString creates an engine from inline source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// ContactContext describes one player–enemy contact.
type ContactContext struct {
	Base         uint32 // configured contact damage
	PlayerHealth uint32
	EnemyKind    string
}

// BulletHitContext describes one bullet–enemy contact.
type BulletHitContext struct {
	Base           uint32 // damage carried by the bullet
	EnemyHealth    uint32
	EnemyMaxHealth uint32
	EnemyKind      string
	BulletAge      time.Duration
}

// ContactDamage calls calc_contact_damage(ctx) if defined.
func (e *Engine) ContactDamage(ctx ContactContext) uint32 {
	t := e.vm.NewTable()
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("player_hp", lua.LNumber(ctx.PlayerHealth))
	t.RawSetString("enemy_kind", lua.LString(ctx.EnemyKind))
	return e.callDamage("calc_contact_damage", t, ctx.Base)
}

// BulletDamage calls calc_bullet_damage(ctx) if defined.
func (e *Engine) BulletDamage(ctx BulletHitContext) uint32 {
	t := e.vm.NewTable()
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("enemy_hp", lua.LNumber(ctx.EnemyHealth))
	t.RawSetString("enemy_max_hp", lua.LNumber(ctx.EnemyMaxHealth))
	t.RawSetString("enemy_kind", lua.LString(ctx.EnemyKind))
	t.RawSetString("bullet_age", lua.LNumber(ctx.BulletAge.Seconds()))
	return e.callDamage("calc_bullet_damage", t, ctx.Base)
}

// callDamage runs a one-argument hook returning a number. Missing hooks,
// script errors and non-numeric results all yield fallback.
func (e *Engine) callDamage(name string, arg *lua.LTable, fallback uint32) uint32 {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return fallback
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua hook error", zap.String("hook", name), zap.Error(err))
		return fallback
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		e.log.Error("lua hook returned non-number",
			zap.String("hook", name),
			zap.String("type", ret.Type().String()),
		)
		return fallback
	}
	return clampDamage(float64(n))
}

func clampDamage(v float64) uint32 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
