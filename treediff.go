package treediff

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

const (
	ModeDiff  = "diff"
	ModeApply = "apply"
)

type Config struct {
	Mode string

	// diff mode
	TreeA        string
	TreeB        string
	NormalizeEOL bool

	// apply mode
	Target string
	DryRun bool
	CopyTo string

	// shared
	ChangeSetDir string
	Filter       string
	Overwrite    bool
	Verbose      bool
}

type ProgressUpdate func(current, total int)

// Outcome carries whichever result the selected mode produced.
type Outcome struct {
	ChangeSet *ChangeSet
	Report    *ApplyReport
}

type App struct {
	cfg              *Config
	log              *slog.Logger
	progressCallback ProgressUpdate
}

type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

func NewApp(cfg *Config) (*App, error) {
	if cfg.ChangeSetDir == "" {
		cfg.ChangeSetDir = "."
	}
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return &App{cfg: cfg, log: log}, nil
}

func (a *App) SetProgressCallback(cb ProgressUpdate) { a.progressCallback = cb }

func (a *App) Execute() (out *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()

	switch a.cfg.Mode {
	case ModeApply:
		return a.runApply()
	default:
		return a.runDiff()
	}
}

func (a *App) runDiff() (*Outcome, error) {
	filter, err := CompileFilter(a.cfg.Filter)
	if err != nil {
		return nil, err
	}

	treeA, err := openTree(a.cfg.TreeA)
	if err != nil {
		return nil, err
	}
	treeB, err := openTree(a.cfg.TreeB)
	if err != nil {
		return nil, err
	}

	scratch, err := NewScratch()
	if err != nil {
		return nil, err
	}
	defer scratch.Release()

	classifier := &Classifier{
		Differ:       NewUnifiedDiffer(),
		Filter:       filter,
		NormalizeEOL: a.cfg.NormalizeEOL,
		Log:          a.log,
		Progress:     a.progressCallback,
	}
	cs, err := classifier.Classify(treeA, treeB, scratch)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(a.cfg.ChangeSetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create change-set directory: %w", err)
	}
	store := NewStore(osfs.New(a.cfg.ChangeSetDir))
	if err := store.Write(cs, a.cfg.Overwrite); err != nil {
		return nil, err
	}
	return &Outcome{ChangeSet: cs}, nil
}

func (a *App) runApply() (*Outcome, error) {
	var filter FilterFunc
	if a.cfg.Filter != "" {
		var err error
		if filter, err = CompileFilter(a.cfg.Filter); err != nil {
			return nil, err
		}
	}

	target, err := openTree(a.cfg.Target)
	if err != nil {
		return nil, err
	}

	var dest billy.Filesystem
	if a.cfg.CopyTo != "" {
		dest = osfs.New(a.cfg.CopyTo)
	}

	store := NewStore(osfs.New(a.cfg.ChangeSetDir))
	applier := &Applier{
		Patcher: UnifiedPatcher{},
		Cloner:  FSCloner{},
		Log:     a.log,
	}
	report, err := applier.Apply(store, target, dest, ApplyOptions{
		DryRun:  a.cfg.DryRun,
		Verbose: a.cfg.Verbose,
		Force:   a.cfg.Overwrite,
		CopyTo:  a.cfg.CopyTo,
		Filter:  filter,
	})
	if err != nil {
		return nil, err
	}
	return &Outcome{Report: report}, nil
}

func openTree(root string) (billy.Filesystem, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEnumeration, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrEnumeration, root)
	}
	return osfs.New(root), nil
}
