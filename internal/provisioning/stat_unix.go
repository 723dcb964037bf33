//go:build unix

package provisioning

import (
	"io/fs"
	"syscall"
)

// fileOwner extracts the numeric owner from a stat result. The third return
// is false when the underlying filesystem does not report ownership.
func fileOwner(info fs.FileInfo) (uid, gid int, ok bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return int(st.Uid), int(st.Gid), true
}
