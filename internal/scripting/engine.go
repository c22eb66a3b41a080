package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for behavior and formula scripts.
// Single-goroutine access only (tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. Missing subdirectories are skipped: a world with no scripts
// falls back to the built-in behaviors.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "behavior", "formula"} {
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

func (e *Engine) Close() {
	e.vm.Close()
}

// BehaviorContext holds pre-packed data for an agent's per-tick decision.
type BehaviorContext struct {
	Species        string
	X, Y           int
	SpawnX, SpawnY int
	HP, MaxHP      int
	Tick           int
	NearestFoeDX   int // offset to the nearest hostile, 0,0 when none
	NearestFoeDY   int
	HasFoe         bool
}

// Action is the movement intent returned by a behavior: a unit-ish
// direction in cells, scaled by the agent's speed by the caller.
type Action struct {
	DX, DY float64
}

// DecideAction calls the Lua behavior function "behavior_<key>". When the
// function is not defined, the built-in fallback for the key is used, so a
// scriptless world still moves.
func (e *Engine) DecideAction(key string, ctx BehaviorContext) Action {
	fn := e.vm.GetGlobal("behavior_" + key)
	if fn == lua.LNil {
		return builtinBehavior(key, ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("species", lua.LString(ctx.Species))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("spawn_x", lua.LNumber(ctx.SpawnX))
	t.RawSetString("spawn_y", lua.LNumber(ctx.SpawnY))
	t.RawSetString("hp", lua.LNumber(ctx.HP))
	t.RawSetString("max_hp", lua.LNumber(ctx.MaxHP))
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("foe_dx", lua.LNumber(ctx.NearestFoeDX))
	t.RawSetString("foe_dy", lua.LNumber(ctx.NearestFoeDY))
	t.RawSetString("has_foe", lua.LBool(ctx.HasFoe))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua behavior error", zap.String("behavior", key), zap.Error(err))
		return builtinBehavior(key, ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua behavior returned non-table", zap.String("behavior", key))
		return builtinBehavior(key, ctx)
	}

	return Action{
		DX: float64(lua.LVAsNumber(rt.RawGetString("dx"))),
		DY: float64(lua.LVAsNumber(rt.RawGetString("dy"))),
	}
}

// RegenInterval calls the Lua regen_interval function, returning the number
// of ticks between regen pulses for a species. Defaults to 10.
func (e *Engine) RegenInterval(species string, maxHP int) int {
	fn := e.vm.GetGlobal("regen_interval")
	if fn == lua.LNil {
		return 10
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(species), lua.LNumber(maxHP)); err != nil {
		e.log.Error("lua regen_interval error", zap.Error(err))
		return 10
	}
	v := int(lua.LVAsNumber(e.vm.Get(-1)))
	e.vm.Pop(1)
	if v < 1 {
		v = 1
	}
	return v
}

// RegenAmount calls the Lua regen_amount function, returning how much HP a
// regen pulse restores. Defaults to 1.
func (e *Engine) RegenAmount(species string, hp, maxHP int) int {
	fn := e.vm.GetGlobal("regen_amount")
	if fn == lua.LNil {
		return 1
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(species), lua.LNumber(hp), lua.LNumber(maxHP)); err != nil {
		e.log.Error("lua regen_amount error", zap.Error(err))
		return 1
	}
	v := int(lua.LVAsNumber(e.vm.Get(-1)))
	e.vm.Pop(1)
	return v
}

// builtinBehavior is the scriptless fallback. Hunters close on their foe,
// everyone else drifts around their spawn point on a tick-driven square.
func builtinBehavior(key string, ctx BehaviorContext) Action {
	if key == "hunt" && ctx.HasFoe {
		return Action{DX: sign(ctx.NearestFoeDX), DY: sign(ctx.NearestFoeDY)}
	}
	if key == "guard" {
		// Drift back toward spawn when displaced.
		return Action{DX: sign(ctx.SpawnX - ctx.X), DY: sign(ctx.SpawnY - ctx.Y)}
	}
	switch (ctx.Tick / 8) % 4 {
	case 0:
		return Action{DX: 1}
	case 1:
		return Action{DY: 1}
	case 2:
		return Action{DX: -1}
	default:
		return Action{DY: -1}
	}
}

func sign(v int) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
