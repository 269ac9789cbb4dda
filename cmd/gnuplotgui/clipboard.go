package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	png "image/png"

	"fyne.io/fyne/v2/dialog"

	"github.com/vijay-owncfd/gnuplot-gui/src/applog"
	"github.com/vijay-owncfd/gnuplot-gui/src/gnuplot"
)

// copyToClipboard renders the current plot to a temp PNG and hands it to the
// platform clipboard tool. Fyne's clipboard is text-only, so image transfer
// goes through xclip, osascript or PowerShell depending on the OS.
func (p *plotTab) copyToClipboard() {
	out := filepath.Join(p.state.tmpDir, p.key+"-clip.png")
	if err := p.renderClipboardImage(out); err != nil {
		dialog.ShowError(err, p.state.window)
		return
	}
	if err := clipboardCopyImage(out); err != nil {
		dialog.ShowError(err, p.state.window)
		return
	}
	dialog.ShowInformation("Success", "Plot image copied to clipboard.", p.state.window)
}

func (p *plotTab) renderClipboardImage(out string) error {
	if gnuplot.Available() {
		term := gnuplot.Terminal{Name: "pngcairo", Width: 1024, Height: 768, Output: out, Crop: true}
		ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
		defer cancel()
		return gnuplot.Render(ctx, p.datasets, p.options(), term)
	}
	img, err := gnuplot.Preview(p.datasets, p.options(), 1024, 768)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// clipboardCopyImage pushes the PNG at path onto the system clipboard.
func clipboardCopyImage(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		if _, err := exec.LookPath("xclip"); err != nil {
			return fmt.Errorf("clipboard copy needs the xclip tool (install it with your package manager)")
		}
		cmd = exec.Command("xclip", "-selection", "clipboard", "-t", "image/png", "-i", path)
	case "darwin":
		script := fmt.Sprintf(`set the clipboard to (read (POSIX file %q) as «class PNGf»)`, path)
		cmd = exec.Command("osascript", "-e", script)
	case "windows":
		ps := fmt.Sprintf(
			`Add-Type -AssemblyName System.Windows.Forms; Add-Type -AssemblyName System.Drawing; `+
				`$img=[System.Drawing.Image]::FromFile(%q); [System.Windows.Forms.Clipboard]::SetImage($img); $img.Dispose()`,
			path)
		cmd = exec.Command("powershell", "-NoProfile", "-Command", ps)
	default:
		return fmt.Errorf("clipboard image copy is not supported on %s", runtime.GOOS)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		applog.Warnf("clipboard copy failed: %v (%s)", err, out)
		return fmt.Errorf("clipboard copy failed: %v", err)
	}
	return nil
}
