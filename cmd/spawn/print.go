package main

import (
	"fmt"
	"io"
	"strings"
)

func printLaunchTable(w io.Writer, id string, pid int, cmdline string) {
	pidStr := fmt.Sprint(pid)

	idW := maxInt(36, len(id))
	pidW := maxInt(5, len(pidStr))
	cmdW := maxInt(7, len(cmdline))

	sep := fmt.Sprintf("+-%s-+-%s-+-%s-+\n", strings.Repeat("-", idW), strings.Repeat("-", pidW), strings.Repeat("-", cmdW))
	fmt.Fprint(w, sep)
	fmt.Fprintf(w, "| %s | %s | %s |\n", pad("ID", idW), pad("PID", pidW), pad("COMMAND", cmdW))
	fmt.Fprint(w, sep)
	fmt.Fprintf(w, "| %s | %s | %s |\n", pad(id, idW), pad(pidStr, pidW), pad(cmdline, cmdW))
	fmt.Fprint(w, sep)
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
