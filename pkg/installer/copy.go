package installer

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// shouldFallback decides whether a failed symlink attempt should be retried
// as a copy. Only "not allowed here" failures qualify; anything else, such
// as a missing parent or an occupied target, is a real error.
func shouldFallback(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, os.ErrPermission) ||
		stderrors.Is(err, stderrors.ErrUnsupported) ||
		isPrivilegeError(err)
}

// copyDir copies src into dst, following symlinked directories. Links that
// lead back into a directory already being copied are skipped, as is dst
// itself when it lies inside src.
func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	realDst, err := filepath.EvalSymlinks(dst)
	if err != nil {
		return err
	}

	c := &treeCopier{dst: realDst, copying: make(map[string]bool)}
	return c.copyDir(src, dst)
}

type treeCopier struct {
	dst string
	// copying holds the resolved roots of the linked directories currently
	// being walked
	copying map[string]bool
}

func (c *treeCopier) copyDir(src, dst string) error {
	root, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	if c.copying[root] || root == c.dst {
		return nil
	}
	c.copying[root] = true
	defer delete(c.copying, root)

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			perm := info.Mode().Perm() | 0o700
			if relPath == "." {
				if err := os.MkdirAll(destPath, perm); err != nil {
					return err
				}
				return os.Chmod(destPath, perm)
			}
			if c.isDestination(path) {
				return filepath.SkipDir
			}
			return os.MkdirAll(destPath, perm)
		}

		// Walk does not descend into linked directories
		if info.Mode()&os.ModeSymlink != 0 {
			linked, err := os.Stat(path)
			if err != nil {
				return err
			}
			if linked.IsDir() {
				loops, err := linksToAncestor(path)
				if err != nil || loops {
					return err
				}
				return c.copyDir(path+string(filepath.Separator), destPath)
			}
		}

		return copyFile(path, destPath)
	})
}

func (c *treeCopier) isDestination(dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	return err == nil && resolved == c.dst
}

// linksToAncestor reports whether the directory link at path resolves to
// the directory containing it or one of that directory's parents
func linksToAncestor(path string) (bool, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, err
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return false, err
	}
	return parent == target || strings.HasPrefix(parent, target+string(filepath.Separator)), nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
