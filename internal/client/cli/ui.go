package cli

import (
	"fmt"
	"io"
	"sync"
)

// terminalUI prints notifications and remembers the current route. It is
// the Notifier and Navigator of the CLI.
type terminalUI struct {
	mu    sync.Mutex
	w     io.Writer
	route string
}

func newTerminalUI(w io.Writer) *terminalUI {
	return &terminalUI{w: w, route: "/"}
}

func (u *terminalUI) print(tag, msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.w, "[%s] %s\n", tag, msg)
}

func (u *terminalUI) Success(msg string) { u.print("ok", msg) }
func (u *terminalUI) Info(msg string)    { u.print("info", msg) }
func (u *terminalUI) Warning(msg string) { u.print("warn", msg) }
func (u *terminalUI) Error(msg string)   { u.print("error", msg) }

func (u *terminalUI) Navigate(path string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.route = path
}

func (u *terminalUI) Route() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.route
}
