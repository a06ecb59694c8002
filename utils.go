package main

import (
	"bytes"
	"fmt"
	"image"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanDroppedPath turns text a terminal inserts for a dropped file into a
// path: surrounding quotes, file:// prefixes and backslash escapes go.
func cleanDroppedPath(text string) string {
	p := strings.TrimSpace(text)
	if i := strings.IndexAny(p, "\r\n"); i >= 0 {
		p = strings.TrimSpace(p[:i])
	}
	if len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}
	if strings.HasPrefix(p, "file://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	if runtime.GOOS != "windows" {
		p = strings.ReplaceAll(p, `\ `, " ")
	}
	return p
}

func isVectorFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".svg")
}

type imageLoadedMsg struct {
	name string
	img  image.Image
	err  error
}

type assetLoadedMsg struct {
	asset *Asset
	err   error
}

// loadFileCmd decodes path off the update loop. Vector files become custom
// shapes, anything else is sampled as an image.
func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			if isVectorFile(path) {
				return assetLoadedMsg{err: err}
			}
			return imageLoadedMsg{name: path, err: err}
		}
		defer file.Close()

		name := filepath.Base(path)
		if isVectorFile(path) {
			asset, err := DecodeAsset(strings.TrimSuffix(name, filepath.Ext(name)), file)
			return assetLoadedMsg{asset: asset, err: err}
		}
		img, _, err := DecodeImage(file)
		return imageLoadedMsg{name: name, img: img, err: err}
	}
}

// pasteCmd handles pasted or dropped text: SVG markup becomes a custom
// shape, an existing file path is loaded.
func pasteCmd(text string) tea.Cmd {
	if looksLikeSVG(text) {
		return func() tea.Msg {
			asset, err := DecodeAsset("pasted", bytes.NewReader([]byte(text)))
			return assetLoadedMsg{asset: asset, err: err}
		}
	}
	path := cleanDroppedPath(text)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return func() tea.Msg {
			return imageLoadedMsg{name: path, err: fmt.Errorf("not a file: %s", path)}
		}
	}
	return loadFileCmd(path)
}

func clipboardCmd() tea.Msg {
	text, err := readClipboardText()
	if err != nil {
		return imageLoadedMsg{err: fmt.Errorf("clipboard: %v", err)}
	}
	return pasteCmd(text)()
}
