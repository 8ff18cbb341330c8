package toolcalls

import (
	"context"

	"github.com/KirkDiggler/rpg-fitness/internal/pkg/jsonargs"
)

type funcCommand func()

func (f funcCommand) run(context.Context, *Executor) (string, error) {
	f()
	return "done", nil
}

// RegisterTestTool adds a tool that runs fn, returning a func that removes it
func RegisterTestTool(name string, fn func()) func() {
	parsers[name] = func(jsonargs.Args) (command, error) { return funcCommand(fn), nil }
	return func() { delete(parsers, name) }
}
