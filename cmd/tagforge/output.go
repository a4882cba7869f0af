package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printResult writes a completion line, green when the stream is a terminal.
func printResult(out io.Writer, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if shouldColorize(out) {
		line = ansiGreen + line + ansiReset
	}
	fmt.Fprintln(out, line)
}

// printNotice writes an advisory line, yellow when the stream is a terminal.
func printNotice(out io.Writer, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if shouldColorize(out) {
		line = ansiYellow + line + ansiReset
	}
	fmt.Fprintln(out, line)
}
