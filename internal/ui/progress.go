package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Progress reports counted work on one redrawn line. On a non-terminal
// writer it stays silent until Done.
type Progress struct {
	mu      sync.Mutex
	out     io.Writer
	live    bool
	message string
	total   int
	current int
}

// NewProgress returns a progress line written to out. total may be zero
// until the first Update.
func NewProgress(out io.Writer, message string, total int) *Progress {
	live := false
	if f, ok := out.(*os.File); ok {
		live = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Progress{out: out, live: live, message: message, total: total}
}

// Update records done of total items.
func (p *Progress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = done
	p.total = total
	if p.live {
		fmt.Fprintf(p.out, "\r%s %s", p.message, Muted.Render(fmt.Sprintf("(%d/%d)", p.current, p.total)))
	}
}

// Current returns the number of finished items.
func (p *Progress) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Done clears the progress line and prints msg.
func (p *Progress) Done(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		fmt.Fprint(p.out, "\r\033[K")
	}
	fmt.Fprintln(p.out, msg)
}
