package treediff

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/go-git/go-billy/v5"
)

type ApplyOptions struct {
	DryRun  bool
	Verbose bool
	Force   bool
	CopyTo  string
	Filter  FilterFunc
}

// Applier replays a stored change-set onto a target tree. The six phases
// run in a fixed order; each phase finishes completely before the next
// starts, and a failing phase aborts the rest without rolling back what
// earlier phases already did.
type Applier struct {
	Patcher Patcher
	Cloner  TreeCloner
	Log     *slog.Logger
}

// Apply runs all phases against target. When dest is non-nil the target
// is cloned there first and every later phase operates on the clone. In
// dry-run mode every phase is validated, including in-memory patch
// application, but nothing is written.
func (ap *Applier) Apply(store *Store, target, dest billy.Filesystem, opts ApplyOptions) (*ApplyReport, error) {
	cs, err := store.Read()
	if err != nil {
		return nil, err
	}
	if opts.Filter != nil {
		cs = filterChangeSet(cs, opts.Filter)
	}

	report := &ApplyReport{DryRun: opts.DryRun}

	// Phase 1: clone.
	if dest != nil {
		if opts.DryRun {
			if destTreeExists(dest) && !opts.Force {
				return report, ErrCopyConflict
			}
		} else {
			if err := ap.Cloner.Clone(target, dest, opts.Force); err != nil {
				return report, err
			}
			target = dest
		}
		report.Cloned = opts.CopyTo
		ap.action(opts, "clone", opts.CopyTo)
	}

	// Phase 2: remove files. Missing targets are tolerated so a re-run
	// after a mid-apply failure stays meaningful.
	for _, p := range cs.RemovedFiles {
		if !pathExists(target, p) {
			report.Skipped = append(report.Skipped, p)
			continue
		}
		if !opts.DryRun {
			if err := target.Remove(p); err != nil {
				return report, fmt.Errorf("remove %s: %w", p, err)
			}
		}
		report.RemovedFiles = append(report.RemovedFiles, p)
		ap.action(opts, "remove", p)
	}

	// Phase 3: remove directories. Reduced to the shallowest survivors;
	// recursive deletion covers everything beneath them.
	for _, p := range ReduceTopmost(cs.RemovedDirs) {
		if !pathExists(target, p) {
			report.Skipped = append(report.Skipped, p)
			continue
		}
		if !opts.DryRun {
			if err := removeAllFS(target, p); err != nil {
				return report, fmt.Errorf("remove directory %s: %w", p, err)
			}
		}
		report.RemovedDirs = append(report.RemovedDirs, p)
		ap.action(opts, "rmdir", p)
	}

	// Phase 4: changed files.
	for _, p := range cs.ChangedFiles {
		artifact, textual, err := store.DiffArtifact(p)
		if err != nil {
			return report, err
		}
		if textual {
			if hp := ExtractPathFromDiff(artifact); hp != "" && hp != p && ap.Log != nil {
				ap.Log.Warn("diff artifact header does not match its path", "path", p, "header", hp)
			}
			current, err := readFileFS(target, p)
			if err != nil {
				return report, fmt.Errorf("%w: cannot read %s: %v", ErrPatchApply, p, err)
			}
			patched, err := ap.Patcher.Apply(current, artifact)
			if err != nil {
				return report, fmt.Errorf("%s: %w", p, err)
			}
			if !opts.DryRun {
				if err := writeFileFS(target, p, patched, 0o644); err != nil {
					return report, fmt.Errorf("write %s: %w", p, err)
				}
			}
			report.Patched = append(report.Patched, p)
			ap.action(opts, "patch", p)
		} else {
			if !opts.DryRun {
				if err := writeFileFS(target, p, artifact, 0o644); err != nil {
					return report, fmt.Errorf("write %s: %w", p, err)
				}
			}
			report.Replaced = append(report.Replaced, p)
			ap.action(opts, "replace", p)
		}
	}

	// Phase 5: create directories. Reduced to the deepest survivors;
	// mkdir -p creation brings the ancestors along.
	created := ReduceBottommost(cs.AddedDirs)
	for _, p := range created {
		if !opts.DryRun {
			if err := target.MkdirAll(p, 0o755); err != nil {
				return report, fmt.Errorf("create directory %s: %w", p, err)
			}
		}
		report.CreatedDirs = append(report.CreatedDirs, p)
		ap.action(opts, "mkdir", p)
	}

	// Phase 6: added files. The parent must exist by now; anything else
	// means the stored addedDirs data is wrong.
	for _, p := range cs.AddedFiles {
		snapshot, err := store.Snapshot(p)
		if err != nil {
			return report, err
		}
		if !ap.parentAvailable(target, p, created, opts.DryRun) {
			return report, fmt.Errorf("%w: parent of %s", ErrMissingAncestor, p)
		}
		if !opts.DryRun {
			if err := writeFileFS(target, p, snapshot, 0o644); err != nil {
				return report, fmt.Errorf("write %s: %w", p, err)
			}
		}
		report.AddedFiles = append(report.AddedFiles, p)
		ap.action(opts, "add", p)
	}

	return report, nil
}

// parentAvailable checks the parent directory of an added file. In
// dry-run mode directories planned by phase 5 count as present.
func (ap *Applier) parentAvailable(target billy.Filesystem, p string, planned []string, dryRun bool) bool {
	parent := path.Dir(p)
	if parent == "." || dirExists(target, parent) {
		return true
	}
	if !dryRun {
		return false
	}
	for _, d := range planned {
		if d == parent || isAncestor(parent, d) {
			return true
		}
	}
	return false
}

func (ap *Applier) action(opts ApplyOptions, verb, p string) {
	if ap.Log == nil || !opts.Verbose {
		return
	}
	if opts.DryRun {
		ap.Log.Info("planned", "action", verb, "path", p)
	} else {
		ap.Log.Info("applied", "action", verb, "path", p)
	}
}

// filterChangeSet narrows the stored lists to the paths the filter keeps.
// The lists themselves stay authoritative; this is the same explicit
// narrowing a user performs by editing them.
func filterChangeSet(cs *ChangeSet, keep FilterFunc) *ChangeSet {
	sel := func(paths []string) []string {
		var out []string
		for _, p := range paths {
			if keep(p) {
				out = append(out, p)
			}
		}
		return out
	}
	return &ChangeSet{
		RemovedFiles: sel(cs.RemovedFiles),
		RemovedDirs:  sel(cs.RemovedDirs),
		AddedFiles:   sel(cs.AddedFiles),
		AddedDirs:    sel(cs.AddedDirs),
		ChangedFiles: sel(cs.ChangedFiles),
		Warnings:     cs.Warnings,
		Artifacts:    cs.Artifacts,
	}
}
