package treediff

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
)

type spinner struct {
	frames []string
	index  int
}

func newSpinner() spinner { return spinner{frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}} }
func (s *spinner) tick()  { s.index = (s.index + 1) % len(s.frames) }

func (s spinner) View() string { return s.frames[s.index] }

type TUI struct {
	app         *App
	noAnimation bool
	spinner     spinner
	mu          sync.Mutex
	cur, total  int
}

func NewTUI(app *App, noAnimation bool) *TUI {
	return &TUI{app: app, noAnimation: noAnimation, spinner: newSpinner()}
}

func (t *TUI) Run() error {
	if t.noAnimation {
		out, err := t.app.Execute()
		if err == nil {
			fmt.Print(FormatOutcome(out))
		}
		return err
	}

	t.app.SetProgressCallback(func(c, tot int) {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.cur, t.total = c, tot
	})

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(100 * time.Millisecond):
				t.spinner.tick()
				t.renderProgress()
			}
		}
	}()

	out, err := t.app.Execute()
	close(done)
	fmt.Print("\r\x1b[K")

	if err == nil {
		fmt.Print(FormatOutcome(out))
	}
	return err
}

func (t *TUI) renderProgress() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Printf("\r%s Comparing... %d/%d\x1b[K", t.spinner.View(), t.cur, t.total)
}

func FormatOutcome(out *Outcome) string {
	switch {
	case out == nil:
		return ""
	case out.ChangeSet != nil:
		return FormatChangeSet(out.ChangeSet)
	case out.Report != nil:
		return FormatApplyReport(out.Report)
	default:
		return ""
	}
}

func FormatChangeSet(cs *ChangeSet) string {
	var b strings.Builder
	if cs.Empty() {
		b.WriteString(headerStyle.Render("Trees are identical") + "\n")
	}

	renderList(&b, "Added files:", addedStyle, cs.AddedFiles)
	renderList(&b, "Added directories:", addedStyle, cs.AddedDirs)
	renderList(&b, "Changed files:", changedStyle, cs.ChangedFiles)
	renderList(&b, "Removed files:", removedStyle, cs.RemovedFiles)
	renderList(&b, "Removed directories:", removedStyle, cs.RemovedDirs)
	if n := len(cs.Warnings); n > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d warning(s), see log output", n)) + "\n")
	}

	return b.String()
}

func FormatApplyReport(r *ApplyReport) string {
	var b strings.Builder
	if r.DryRun {
		b.WriteString(headerStyle.Render("Dry run, no changes made") + "\n\n")
	}
	if r.Cloned != "" {
		b.WriteString(headerStyle.Render("Cloned to: ") + r.Cloned + "\n")
	}

	renderList(&b, "Removed files:", removedStyle, r.RemovedFiles)
	renderList(&b, "Removed directories:", removedStyle, r.RemovedDirs)
	renderList(&b, "Patched:", changedStyle, r.Patched)
	renderList(&b, "Replaced:", changedStyle, r.Replaced)
	renderList(&b, "Created directories:", addedStyle, r.CreatedDirs)
	renderList(&b, "Added files:", addedStyle, r.AddedFiles)
	renderList(&b, "Skipped (already gone):", skippedStyle, r.Skipped)

	if b.Len() == 0 {
		b.WriteString(headerStyle.Render("Nothing to apply") + "\n")
	}
	return b.String()
}

func renderList(b *strings.Builder, title string, style lipgloss.Style, list []string) {
	if len(list) == 0 {
		return
	}
	b.WriteString(style.Render(title) + "\n")
	for _, f := range list {
		b.WriteString(fmt.Sprintf("  %s\n", f))
	}
}
