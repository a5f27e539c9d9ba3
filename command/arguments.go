package command

import (
	"strings"
)

// ParseArguments recovers the command line arguments encoded in a capture
// file name: the command name prefix and the extension are removed and the
// rest is split on underscores.
//
//	ParseArguments("ps", "ps_-eo_pid,ppid,user,command.txt") // ["-eo", "pid,ppid,user,command"]
//	ParseArguments("ps", "ps.txt")                           // []
//
// It returns nil when filename does not start with name.
func ParseArguments(name, filename string) []string {
	if !strings.HasPrefix(filename, name) {
		return nil
	}

	rest := filename[len(name):]
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimPrefix(rest, "_")

	args := []string{}
	for _, part := range strings.Split(rest, "_") {
		if part != "" {
			args = append(args, part)
		}
	}
	return args
}

// ps output styles recognized by PsFormat
const (
	FormatBasic           = "basic"
	FormatBSDAllProcesses = "bsd_all_processes"
	FormatSysVFull        = "sysv_full_format"
	FormatCustom          = "custom_format"
	FormatTree            = "tree_format"
	FormatLong            = "long_format"
	FormatUser            = "user_format"
	FormatVirtualMemory   = "virtual_memory_format"
	FormatJob             = "job_format"
	FormatCustomOrMixed   = "custom_or_mixed"
)

// PsFormat names the ps output style suggested by args. The result is a
// label for the record and never affects parsing.
func PsFormat(args []string) string {
	if len(args) == 0 {
		return FormatBasic
	}

	s := strings.Join(args, " ")
	switch {
	case strings.Contains(s, "aux"):
		return FormatBSDAllProcesses
	case strings.Contains(s, "-ef"):
		return FormatSysVFull
	case strings.Contains(s, "-eo"):
		return FormatCustom
	case strings.Contains(s, "axjf"), strings.Contains(s, "f"):
		return FormatTree
	case strings.Contains(s, "-l"):
		return FormatLong
	case strings.Contains(s, "-u"):
		return FormatUser
	case strings.Contains(s, "-v"):
		return FormatVirtualMemory
	case strings.Contains(s, "-j"):
		return FormatJob
	}
	return FormatCustomOrMixed
}
