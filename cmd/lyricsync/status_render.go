package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"lyricsync/internal/pipeline"
	"lyricsync/internal/preflight"
	"lyricsync/internal/textutil"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderCheckLine(r preflight.Result, colorize bool) string {
	label, color := "OK", text.FgGreen
	if !r.Passed {
		label, color = "FAIL", text.FgRed
	}
	status := fmt.Sprintf("[%s] %s", label, r.Detail)
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, r.Name+":", status)
	if colorize {
		return color.Sprint(base)
	}
	return base
}

// statusLabel renders an album status such as "documents-unreadable" as
// "Documents Unreadable", colored when the output is a terminal.
func statusLabel(status string, colorize bool) string {
	label := textutil.TitleCase(strings.ReplaceAll(status, "-", " "))
	if !colorize {
		return label
	}
	switch status {
	case pipeline.StatusOK:
		return text.FgGreen.Sprint(label)
	case pipeline.StatusDocumentsUnreadable:
		return text.FgYellow.Sprint(label)
	default:
		return text.FgRed.Sprint(label)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
