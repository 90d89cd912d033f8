// Package assets installs the static support files next to the generated
// pages.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// theme stylesheet produced by the m.css build.
const compiledTheme = "m-dark+documentation.compiled.css"

// ownAssets are shipped alongside the tool itself.
var ownAssets = []string{"dox.css", "github-icon.png"}

// Install copies the compiled theme from the m.css checkout and the tool's
// own stylesheet and icons into the HTML output directory, overwriting any
// previous copies.
func Install(assetDir, mcssDir, htmlDir string) error {
	if err := copyFile(filepath.Join(mcssDir, "css", compiledTheme), filepath.Join(htmlDir, compiledTheme)); err != nil {
		return err
	}
	for _, name := range ownAssets {
		if err := copyFile(filepath.Join(assetDir, name), filepath.Join(htmlDir, name)); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening asset %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating asset %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying asset %s: %w", dst, err)
	}
	return out.Close()
}
