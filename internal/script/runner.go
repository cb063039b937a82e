// Package script drives a board session from Lua.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. A global "board" table exposes the session
// operations; see Runner.register for the full list.
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/collabboard/internal/session"
)

// blockedGlobals are base functions that reach outside the sandbox.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// Runner executes scripts against a session.
type Runner struct {
	session *session.Session
	out     io.Writer
	log     logrus.FieldLogger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects print.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) { r.log = l }
}

// New returns a runner bound to s.
func New(s *session.Session, opts ...Option) *Runner {
	r := &Runner{session: s, out: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.log = l
	}
	return r
}

// RunFile reads and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return &Error{Name: path, Err: err}
	}
	return r.Run(ctx, path, string(src))
}

// Run executes src. name is used in error messages. The run is aborted
// when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, name, src string) (err error) {
	L := newState()
	defer L.Close()
	L.SetContext(ctx)

	r.register(L)

	defer func() {
		if p := recover(); p != nil {
			err = &Error{Name: name, Err: fmt.Errorf("lua panic: %v", p)}
		}
	}()

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return &Error{Name: name, Err: err}
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return &Error{Name: name, Err: err}
	}
	r.log.WithFields(logrus.Fields{
		"script":  name,
		"objects": len(r.session.Objects()),
	}).Debug("script finished")
	return nil
}

// newState opens a state with only the safe standard libraries.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func (r *Runner) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
