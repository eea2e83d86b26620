// Package span maintains per-line syntax-highlight style runs and
// patches them incrementally across edits.
//
// A Span says "from this column to the next span's column (or the line
// end), render with this style". Every line's spans are sorted strictly
// ascending by column and the first span always sits at column 0, so a
// line's spans cover it completely.
//
// A Map holds one span list per document line. Between full analysis
// passes, the map is patched in place after each edit in O(edit size)
// by the four shift operations (single/multi-line insert/delete). The
// patches keep highlighting visually plausible; exact colors are
// restored by the next full analysis.
//
// Patching is only valid while the map is "prepared", meaning its row
// count still corresponds to the document's pre-edit line count. The
// PreparedForInsert/PreparedForDelete checks guard this; a stale map is
// left untouched and replaced wholesale by the next analysis.
package span
