package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/meshlog/internal/record"
)

const (
	colorReset = "\033[0m"
	colorGood  = "\033[1;32m" // bold green
	colorBad   = "\033[1;31m" // bold red
	colorLabel = "\033[1;34m" // bold blue
	colorDim   = "\033[2m"
)

type Options struct {
	Width     int  // wrap width (0 = no wrap)
	Color     bool // ANSI colours
	ShowEmpty bool // also list empty fields
}

// RenderRecord renders rec as aligned "Column: value" lines in ledger
// column order.
func RenderRecord(rec record.Unified, opts Options) string {
	labelW := 0
	for _, c := range record.Columns {
		if w := runewidth.StringWidth(c); w > labelW {
			labelW = w
		}
	}

	var b strings.Builder
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	title := fmt.Sprintf("--- %s [%s] ---", rec.ProjectName, rec.Tool)
	writeLine(paint(title, colorDim, opts.Color))

	for i, val := range rec.Values() {
		if val == "" && !opts.ShowEmpty {
			continue
		}
		col := record.Columns[i]
		label := runewidth.FillRight(col+":", labelW+1)
		if col == "Success" {
			val = paint(val, successColor(val), opts.Color)
		}
		writeLine(paint(label, colorLabel, opts.Color) + " " + val)
	}
	return b.String()
}

func successColor(v string) string {
	switch v {
	case "True":
		return colorGood
	case "False":
		return colorBad
	}
	return ""
}

func paint(s, color string, enabled bool) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + colorReset
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}
