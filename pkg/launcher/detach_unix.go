//go:build unix

package launcher

import "syscall"

// detachedProcAttr places the child in its own session so it survives the
// termination of the launcher's controlling terminal.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
