package treediff

import "errors"

var (
	// ErrEnumeration: a tree root could not be traversed or the filter
	// expression is invalid. Aborts the whole run.
	ErrEnumeration = errors.New("tree enumeration failed")

	// ErrAlreadyExists: the change-set destination already holds a store
	// and overwrite was not requested.
	ErrAlreadyExists = errors.New("change-set already exists")

	// ErrCopyConflict: the --copy-to destination exists and overwrite was
	// not forced.
	ErrCopyConflict = errors.New("copy destination already exists")

	// ErrMissingStore: the on-disk change-set is incomplete or
	// inconsistent. Raised before any mutation.
	ErrMissingStore = errors.New("change-set store is missing or incomplete")

	// ErrPatchApply: a stored diff does not apply cleanly to the current
	// target content. Aborts the remaining apply phases.
	ErrPatchApply = errors.New("patch does not apply")

	// ErrMissingAncestor: an added file's parent directory is absent after
	// the directory-creation phase. Internal invariant violation.
	ErrMissingAncestor = errors.New("missing ancestor directory")
)
