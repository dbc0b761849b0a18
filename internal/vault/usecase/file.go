package usecase

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const vaultFileMode = 0o600

// writeFileAtomic replaces path with data. The data goes to a temp file in the same directory
// which is then renamed over path, so readers see either the old or the new file, and a failed
// write leaves the old file intact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(vaultFileMode); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to set temp file mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// EnsureIgnored appends entry to the ignore file unless a line already equals it.
// The ignore file is only ever appended to; it is created when missing.
// Reports whether the file was changed.
func EnsureIgnored(ignorePath, entry, comment string) (bool, error) {
	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", ignorePath, err)
	}

	if hasIgnoreEntry(content, entry) {
		return false, nil
	}

	var buf bytes.Buffer
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		buf.WriteString("\n")
	}
	if len(content) > 0 {
		buf.WriteString("\n")
	}
	if comment != "" {
		buf.WriteString("# " + comment + "\n")
	}
	buf.WriteString(entry + "\n")

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", ignorePath, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return false, fmt.Errorf("failed to append to %s: %w", ignorePath, err)
	}
	return true, nil
}

func hasIgnoreEntry(content []byte, entry string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == entry || line == "/"+entry {
			return true
		}
	}
	return false
}
