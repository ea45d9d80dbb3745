//go:build windows

package installer

import (
	stderrors "errors"
	"syscall"
)

// errPrivilegeNotHeld is ERROR_PRIVILEGE_NOT_HELD, returned by CreateSymbolicLink
// when developer mode is off and the process is not elevated
const errPrivilegeNotHeld syscall.Errno = 1314

func isPrivilegeError(err error) bool {
	return stderrors.Is(err, errPrivilegeNotHeld)
}
