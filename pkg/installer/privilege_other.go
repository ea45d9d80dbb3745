//go:build !windows

package installer

func isPrivilegeError(error) bool {
	return false
}
