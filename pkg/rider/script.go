// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package rider

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrScript is wrapped by every script parse or validation error
var ErrScript = errors.New("rider: invalid script")

// Script is a choreography: an ordered list of controller operations.
//
//	name = "wave demo"
//
//	[[step]]
//	op = "position"
//	arg = 3
//
//	[[step]]
//	op = "wave"
//	arg = "fast"
//
//	[[step]]
//	op = "move"
//	arg = "forward"
type Script struct {
	Name  string       `toml:"name"`
	Steps []ScriptStep `toml:"step"`
}

// ScriptStep is one operation. Arg is an integer, a float or a string depending on Op.
type ScriptStep struct {
	Op  string      `toml:"op"`
	Arg interface{} `toml:"arg"`
}

// String implements fmt.Stringer
func (s ScriptStep) String() string {
	if s.Arg == nil {
		return s.Op
	}
	return fmt.Sprintf("%s %v", s.Op, s.Arg)
}

// step is a validated operation bound to a controller at run time
type step func(c *Controller) error

// Ops lists the operation names accepted in scripts and by Apply
var Ops = []string{
	"position", "wave", "action", "stretch", "shrink", "lean_left", "lean_right",
	"turn", "move", "speed", "speed_up", "slow_down", "turn_off", "stop", "wait",
	"code", "squat", "shuffle", "comment",
}

// ParseScript decodes and validates a TOML script
func ParseScript(data []byte) (*Script, error) {
	var s Script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrScript, undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads and parses a script file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// Validate checks every step without touching a controller
func (s *Script) Validate() error {
	_, err := s.compile()
	return err
}

func (s *Script) compile() ([]step, error) {
	steps := make([]step, 0, len(s.Steps))
	for i, st := range s.Steps {
		fn, err := compileStep(st)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d (%s): %v", ErrScript, i+1, st.Op, err)
		}
		steps = append(steps, fn)
	}
	return steps, nil
}

// Run executes the script in order. observe, if not nil, is called before each step
// with its 1-based index. Run stops at the first failing step.
func (s *Script) Run(c *Controller, observe func(i int, st ScriptStep)) error {
	steps, err := s.compile()
	if err != nil {
		return err
	}
	for i, fn := range steps {
		if observe != nil {
			observe(i+1, s.Steps[i])
		}
		if err := fn(c); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, s.Steps[i].Op, err)
		}
	}
	return nil
}

// Apply runs a single operation against a controller
func Apply(c *Controller, op string, arg interface{}) error {
	fn, err := compileStep(ScriptStep{Op: op, Arg: arg})
	if err != nil {
		return err
	}
	return fn(c)
}

// ParseStepArg converts a command line argument into a script argument value:
// an int64, a float64 or the string itself.
func ParseStepArg(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func compileStep(st ScriptStep) (step, error) {
	op := strings.ToLower(strings.TrimSpace(st.Op))

	switch op {
	case "speed_up", "slow_down", "turn_off", "stop":
		if st.Arg != nil {
			return nil, fmt.Errorf("%w: %s takes no argument", ErrInvalidArgument, op)
		}
	case "comment":
	default:
		if st.Arg == nil {
			if op == "" {
				return nil, fmt.Errorf("%w: missing op", ErrInvalidArgument)
			}
			if !knownOp(op) {
				return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidArgument, st.Op)
			}
			return nil, fmt.Errorf("%w: %s needs an argument", ErrInvalidArgument, op)
		}
	}

	switch op {
	case "position":
		n, err := intArg(st.Arg)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > 9 {
			return nil, fmt.Errorf("%w: position %d out of range 1..9", ErrInvalidArgument, n)
		}
		return func(c *Controller) error { c.SetPosition(n); return nil }, nil

	case "wave":
		w, err := stringArg(st.Arg, ParseWave)
		if err != nil {
			return nil, err
		}
		return func(c *Controller) error { return c.SetWave(w) }, nil

	case "action":
		a, err := stringArg(st.Arg, ParseAction)
		if err != nil {
			return nil, err
		}
		return func(c *Controller) error { return c.PerformAction(a) }, nil

	case "turn":
		r, err := stringArg(st.Arg, ParseRotation)
		if err != nil {
			return nil, err
		}
		return func(c *Controller) error { return c.Turn(r) }, nil

	case "move":
		m, err := stringArg(st.Arg, ParseMovement)
		if err != nil {
			return nil, err
		}
		return func(c *Controller) error { return c.Move(m) }, nil

	case "stretch", "shrink", "lean_left", "lean_right", "speed", "wait", "code":
		n, err := intArg(st.Arg)
		if err != nil {
			return nil, err
		}
		return intStep(op, n), nil

	case "squat", "shuffle":
		f, err := floatArg(st.Arg)
		if err != nil {
			return nil, err
		}
		if f < 2 || f > 4 {
			return nil, fmt.Errorf("%w: period %g out of range 2..4", ErrInvalidArgument, f)
		}
		if op == "squat" {
			return func(c *Controller) error { return c.Squat(f) }, nil
		}
		return func(c *Controller) error { return c.Shuffle(f) }, nil

	case "speed_up":
		return (*Controller).SpeedUp, nil
	case "slow_down":
		return (*Controller).SlowDown, nil
	case "turn_off":
		return (*Controller).TurnOff, nil
	case "stop":
		return (*Controller).Stop, nil

	case "comment":
		var text string
		if st.Arg != nil {
			text = fmt.Sprint(st.Arg)
		}
		return func(c *Controller) error { c.Comment(text); return nil }, nil
	}

	return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidArgument, st.Op)
}

func intStep(op string, n int) step {
	switch op {
	case "stretch":
		return func(c *Controller) error { return c.Stretch(n) }
	case "shrink":
		return func(c *Controller) error { return c.Shrink(n) }
	case "lean_left":
		return func(c *Controller) error { return c.LeanLeft(n) }
	case "lean_right":
		return func(c *Controller) error { return c.LeanRight(n) }
	case "speed":
		return func(c *Controller) error { return c.SetSpeed(n) }
	case "wait":
		return func(c *Controller) error { return c.Wait(n) }
	default: // code
		return func(c *Controller) error { return c.Submit(n) }
	}
}

func knownOp(op string) bool {
	for _, o := range Ops {
		if o == op {
			return true
		}
	}
	return false
}

func intArg(v interface{}) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%w: want an integer, got %v", ErrInvalidArgument, v)
}

func floatArg(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: want a number, got %v", ErrInvalidArgument, v)
}

func stringArg[T any](v interface{}, parse func(string) (T, error)) (T, error) {
	s, ok := v.(string)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: want a name, got %v", ErrInvalidArgument, v)
	}
	return parse(s)
}
