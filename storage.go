package main

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const fileHeader = "MOGRITO"

// SaveToFile writes the sketch in the line based sketch format.
func (sk *Sketch) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := sk.Encode(w); err != nil {
		return err
	}
	return w.Flush()
}

func (sk *Sketch) Encode(w io.Writer) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n", fileHeader)

	lines := settingLines(sk.settings)
	fmt.Fprintf(&b, "SETTINGS:%d\n", len(lines))
	for _, line := range lines {
		fmt.Fprintln(&b, line)
	}

	assets := sk.catalog.Assets()
	fmt.Fprintf(&b, "ASSETS:%d\n", len(assets))
	for _, a := range assets {
		name := strings.ReplaceAll(a.Name, ",", " ")
		fmt.Fprintf(&b, "%s,%s\n", name, base64.StdEncoding.EncodeToString(a.Source))
	}

	enabled := sk.catalog.Enabled()
	parts := make([]string, len(enabled))
	for i, id := range enabled {
		parts[i] = strconv.Itoa(int(id))
	}
	fmt.Fprintf(&b, "ENABLED:%s\n", strings.Join(parts, ","))

	var cells []string
	sk.grid.Each(func(c, r int, cell *Cell) {
		if cell.Empty() && !cell.Locked && cell.Color == 0 {
			return
		}
		locked := 0
		if cell.Locked {
			locked = 1
		}
		cells = append(cells, fmt.Sprintf("%d,%d,%d,%d,%d", c, r, cell.Shape, cell.Color, locked))
	})
	fmt.Fprintf(&b, "CELLS:%d\n", len(cells))
	for _, line := range cells {
		fmt.Fprintln(&b, line)
	}

	_, err := w.Write(b.Bytes())
	return err
}

// LoadFromFile reads a sketch written by SaveToFile.
func LoadFromFile(filename string) (*Sketch, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file)
}

func Decode(r io.Reader) (*Sketch, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)

	if !scanner.Scan() || scanner.Text() != fileHeader {
		return nil, fmt.Errorf("invalid file format")
	}

	section := func(name string) (string, error) {
		if !scanner.Scan() {
			return "", fmt.Errorf("missing %s header", strings.ToLower(name))
		}
		rest, ok := strings.CutPrefix(scanner.Text(), name+":")
		if !ok {
			return "", fmt.Errorf("expected %s header", strings.ToLower(name))
		}
		return rest, nil
	}
	count := func(name string) (int, error) {
		rest, err := section(name)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid %s count: %q", strings.ToLower(name), rest)
		}
		return n, nil
	}

	settings := DefaultSettings()
	n, err := count("SETTINGS")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing settings data")
		}
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			return nil, fmt.Errorf("invalid setting %q", scanner.Text())
		}
		if err := applySetting(&settings, key, value); err != nil {
			Logger().Warn("load: setting skipped", "key", key, "err", err)
		}
	}

	fill := settings.Fill
	settings.Fill = FillEmpty
	sk, err := NewSketch(settings)
	if err != nil {
		return nil, err
	}

	if n, err = count("ASSETS"); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing asset data")
		}
		name, data, ok := strings.Cut(scanner.Text(), ",")
		if !ok {
			return nil, fmt.Errorf("invalid asset format")
		}
		src, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("asset %s: %w: %v", name, ErrDecode, err)
		}
		asset, err := DecodeAsset(name, bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		sk.catalog.AddCustom(asset, name)
	}

	rest, err := section("ENABLED")
	if err != nil {
		return nil, err
	}
	var enabled []ShapeID
	if rest != "" {
		for _, part := range strings.Split(rest, ",") {
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid shape id %q", part)
			}
			enabled = append(enabled, ShapeID(id))
		}
	}
	if err := sk.catalog.SetEnabled(enabled); err != nil {
		return nil, err
	}

	if n, err = count("CELLS"); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing cell data")
		}
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) != 5 {
			return nil, fmt.Errorf("invalid cell format")
		}
		var v [5]int
		for j, p := range parts {
			if v[j], err = strconv.Atoi(p); err != nil {
				return nil, fmt.Errorf("invalid cell format: %v", err)
			}
		}
		if err := sk.SetCell(v[0], v[1], ShapeID(v[2]), v[3]); err != nil {
			return nil, err
		}
		if v[4] == 1 {
			sk.grid.cell(v[0], v[1]).Locked = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sk.settings = sk.settings.With(func(s *Settings) { s.Fill = fill })
	return sk, nil
}
