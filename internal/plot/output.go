package plot

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Save writes the figure to path, as PNG for a .png extension and SVG for
// .svg or no extension.
func (f *Figure) Save(path string) (err error) {
	var write func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		write = f.WritePNG
	case ".svg", "":
		write = f.WriteSVG
	default:
		return fmt.Errorf("save %s: unsupported format %q", path, ext)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(out); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	slog.Debug("figure_saved", "path", path)
	return nil
}
