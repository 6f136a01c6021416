// Package writer flushes the emitter's accumulated text blobs to disk.
package writer

import (
	"fmt"
	"os"
)

// Write truncates and overwrites headerPath/sourcePath with header/source.
// There is no temp-file/rename dance: the spec calls for last-writer-wins
// semantics, and the teacher's own generators write straight to
// os.Create'd files too (see DESIGN.md).
func Write(headerPath, header, sourcePath, source string) error {
	if err := WriteOne(headerPath, header); err != nil {
		return fmt.Errorf("writing header %s: %w", headerPath, err)
	}
	if err := WriteOne(sourcePath, source); err != nil {
		return fmt.Errorf("writing source %s: %w", sourcePath, err)
	}
	return nil
}

// WriteOne truncates and overwrites a single output file, for callers (like
// the module-list subcommand) that only ever produce one file.
func WriteOne(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
