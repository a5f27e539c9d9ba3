// Package command parses the saved output of specific command line tools.
//
// Captures are plain text files kept in a command_outputs directory and
// named after the command line that produced them, with underscores for
// spaces:
//
//	command_outputs/
//	    ps.txt
//	    ps_aux.txt
//	    ps_-eo_pid,ppid,user,command.txt
//	    lsof_-i.txt
//
// Each supported tool is a [Command]. A Command finds the table header in a
// capture, slices every row with the table package and turns the row into
// a typed record using its field mapping. Parsing is driven by the header
// only: the arguments in the file name are recorded as metadata and never
// change how a file is parsed.
//
// # Registry
//
// Commands are looked up by name in a [Registry]. The default registry
// holds ps and lsof:
//
//	cmd, err := command.Lookup("ps")
//	records, warnings, err := cmd.Parse(ctx, doc)
//
// # Running a Directory
//
// A [Runner] discovers every capture for every registered command and
// parses them in parallel:
//
//	results, err := command.NewRunner().Run(ctx, "evidence/command_outputs")
package command
