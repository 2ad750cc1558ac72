//go:build !unix

package launcher

import "syscall"

// detachedProcAttr is a no-op on platforms without sessions; the child is
// still released rather than waited on.
func detachedProcAttr() *syscall.SysProcAttr {
	return nil
}
