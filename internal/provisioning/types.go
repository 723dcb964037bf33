package provisioning

import "os"

// MaxOwnerID is the largest UID or GID accepted in a ProvisionRequest.
// Linux does not support identities above 2^32-2, and values near the
// boundary behave unpredictably on some filesystems.
const MaxOwnerID = 1<<32 - 2

// DefaultDirMode is the permission mode applied when none is configured.
// Owner-only access matches the expectation of notebook workloads that
// treat the home directory as private storage.
const DefaultDirMode os.FileMode = 0o700

// ProvisionRequest describes the home directory to provision.
type ProvisionRequest struct {
	// BaseHomeDir is the absolute path under which provisioning happens,
	// typically a volume mount. It must already exist.
	BaseHomeDir string

	// Subdirectory is an optional relative path appended under BaseHomeDir
	// to form the actual home directory. Empty means BaseHomeDir itself is
	// the target.
	Subdirectory string

	// OwnerUID and OwnerGID identify the user the directory is provisioned
	// for. Zero is allowed; upstream identity management is expected to
	// reject unreasonable values before they reach this process.
	OwnerUID int
	OwnerGID int

	// DirMode holds the permission bits applied to every created segment
	// and to the leaf directory.
	DirMode os.FileMode
}

// Target returns the absolute path of the home directory the request
// describes, without touching the filesystem.
func (r ProvisionRequest) Target() string {
	if r.Subdirectory == "" {
		return r.BaseHomeDir
	}
	return r.BaseHomeDir + string(os.PathSeparator) + r.Subdirectory
}

// ResolvedPath is the outcome of path resolution: the absolute target plus
// the creation frontier. It is computed once per run and never mutated.
type ResolvedPath struct {
	// Target is the absolute path of the home directory.
	Target string

	// Existing is the deepest ancestor of Target that already exists on
	// disk. Equal to Target when nothing needs to be created.
	Existing string

	// Missing lists the absolute paths of the segments that did not exist
	// at resolution time, ordered from the shallowest to the leaf.
	Missing []string
}

// ProvisionResult reports the outcome of a provisioning run.
type ProvisionResult struct {
	// Created is true when at least one segment was newly made.
	Created bool

	// UID, GID, and Mode are the values observed on the leaf directory
	// after provisioning.
	UID  int
	GID  int
	Mode os.FileMode
}
