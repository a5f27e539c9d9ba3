// Package reader turns captured command output into decoded text lines.
//
// Command output reaches us from many places: redirected to a file on a
// Linux host, copied off a Windows share in UTF-16, pasted from a terminal
// with color escapes still in it. The reader hides those differences and
// hands the table parser plain UTF-8 lines.
//
// # Opening Files
//
// Use [Open] to read a capture from disk:
//
//	r, err := reader.Open("command_outputs/ps_aux.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	lines, err := r.Lines()
//
// Or use [ReadAll] with any io.Reader, or [Decode] with bytes already in
// memory.
//
// # Decoding
//
// Text is decoded in this order:
//
//   - A byte order mark selects UTF-8, UTF-16LE or UTF-16BE and is removed.
//   - Otherwise valid UTF-8 is used as is.
//   - Otherwise the charset is taken from Config.ContentType when it names
//     one, else detected (windows-1252 for legacy single-byte captures).
//
// Bytes that still do not decode become U+FFFD and are counted in
// Text.Replaced.
//
// # Cleaning
//
// With the default configuration the text is also NFC-normalized, so that
// composed and decomposed accents occupy the same number of cells, and
// ANSI terminal escapes are removed. Lines are split on LF with a trailing
// CR dropped.
package reader
