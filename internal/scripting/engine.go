package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for gameplay hooks.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core helpers first so combat and ai scripts can use them.
	for _, sub := range []string{"core", "combat", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
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

// BulletDamageContext holds pre-packed data for one bullet hit.
type BulletDamageContext struct {
	Base        float64 // configured bullet damage
	TargetHP    float64
	TargetMaxHP float64
}

// CalcBulletDamage calls the Lua calc_bullet_damage function. Falls back to
// the base damage when the hook is missing or fails.
func (e *Engine) CalcBulletDamage(ctx BulletDamageContext) float64 {
	fn := e.vm.GetGlobal("calc_bullet_damage")
	if fn == lua.LNil {
		return ctx.Base
	}

	t := e.vm.NewTable()
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("target_hp", lua.LNumber(ctx.TargetHP))
	t.RawSetString("target_max_hp", lua.LNumber(ctx.TargetMaxHP))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_bullet_damage error", zap.Error(err))
		return ctx.Base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_bullet_damage returned non-number",
			zap.String("type", result.Type().String()))
		return ctx.Base
	}
	if n < 0 {
		return 0
	}
	return float64(n)
}

// AimHeading calls the Lua aim_heading function with the seconds elapsed
// since the simulation started. Returns current and false when the hook is
// missing or fails, so the ship keeps its heading.
func (e *Engine) AimHeading(elapsed, current float64) (float64, bool) {
	fn := e.vm.GetGlobal("aim_heading")
	if fn == lua.LNil {
		return current, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(elapsed), lua.LNumber(current)); err != nil {
		e.log.Error("lua aim_heading error", zap.Error(err))
		return current, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		return current, false
	}
	return float64(n), true
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
