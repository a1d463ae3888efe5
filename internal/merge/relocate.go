package merge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// relocate moves a staged output to its final destination, overwriting
// any prior merge of the same group. Scratch and destination commonly
// live on different filesystems (local disk vs NAS), so a cross-device
// rename falls back to copy-then-remove.
func relocate(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies src over dst, fsyncing before close. A partial
// destination is removed on error so a failed relocation never leaves a
// truncated file where players will find it.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open staged output: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy to destination: %w", err)
	}
	if err := out.Sync(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("sync destination: %w", err)
	}
	return nil
}
