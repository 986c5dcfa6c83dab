package gemini

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// errNotUTF8 is reported inline for files that are not valid UTF-8 text.
var errNotUTF8 = errors.New("file is not valid UTF-8 text")

// writeContext writes each file as a header-delimited block:
//
//	--- <path> ---
//	<content>
//	(blank line)
//
// A file that cannot be read is replaced by "--- <path> (Error: <reason>) ---"
// and the remaining files are still written.
func writeContext(w io.Writer, files []string) error {
	bw := bufio.NewWriter(w)
	for _, path := range files {
		content, err := readText(path)
		if err != nil {
			if _, werr := fmt.Fprintf(bw, "--- %s (Error: %v) ---\n\n", path, err); werr != nil {
				return werr
			}
			continue
		}
		if _, err := fmt.Fprintf(bw, "--- %s ---\n%s\n\n", path, content); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// readText reads a whole file and requires it to be valid UTF-8.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errNotUTF8
	}
	return string(data), nil
}

// scratchFile is a per-call temporary file holding the multi-file context.
type scratchFile struct {
	file *os.File
}

// newScratchFile creates a uniquely named file in dir (os.TempDir when empty),
// fills it with the context for files, and rewinds it for reading.
// On error nothing is left on disk.
func newScratchFile(dir string, files []string) (*scratchFile, error) {
	file, err := os.CreateTemp(dir, "gemini-context-*.txt")
	if err != nil {
		return nil, fmt.Errorf("creating context file: %w", err)
	}
	scratch := &scratchFile{file: file}

	if err := writeContext(file, files); err != nil {
		scratch.Remove()
		return nil, fmt.Errorf("writing context file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		scratch.Remove()
		return nil, fmt.Errorf("rewinding context file: %w", err)
	}
	return scratch, nil
}

// Reader returns the file positioned at its start.
func (s *scratchFile) Reader() io.Reader {
	return s.file
}

// Name returns the file path.
func (s *scratchFile) Name() string {
	return s.file.Name()
}

// Remove closes and deletes the file.
func (s *scratchFile) Remove() {
	_ = s.file.Close()
	_ = os.Remove(s.file.Name())
}
