package textutil

import "strings"

const byteOrderMark = "\ufeff"

// lineEndingReplacer folds Windows and classic Mac line endings to \n.
var lineEndingReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
)

// NormalizeNewlines converts CRLF and lone CR line endings to LF and drops a
// leading byte order mark.
func NormalizeNewlines(value string) string {
	value = strings.TrimPrefix(value, byteOrderMark)
	if !strings.ContainsRune(value, '\r') {
		return value
	}
	return lineEndingReplacer.Replace(value)
}
