// Package fields maps raw table header names onto canonical field names.
//
// Command line tools disagree on what to call the same piece of data: ps
// prints the process owner as USER, EUSER or FUSER depending on the format
// options, lsof may print PROC or PROCESS instead of COMMAND. A Mapping is a
// fixed alias table that resolves each of those spellings to one Field.
//
// # Fields
//
// Field is a closed set of canonical names. Its String form is the
// snake_case name emitted in records:
//
//	fields.PID.String()         // "pid"
//	fields.CPUPercent.String()  // "cpu_percent"
//
// # Mappings
//
// Mappings are built once and never change. The package ships two:
//
//	fields.PS    // every ps column alias
//	fields.Lsof  // lsof columns
//
// Lookups are case-insensitive, and a name that is already canonical always
// resolves to itself:
//
//	fields.PS.Resolve("EUSER")   // "user"
//	fields.PS.Resolve("pid")     // "pid"
//	fields.PS.Resolve("WIDGET")  // "WIDGET", unknown names pass through
//
// # Canonicalizing rows
//
// Canonicalize renames every cell of a table.Row. When two columns resolve
// to the same field the later column wins:
//
//	rec := fields.Canonicalize(row, fields.PS)
//	rec["pid"], rec["args"]
package fields
