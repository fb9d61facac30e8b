// Package script loads and saves translation script files: JSON documents
// holding the ordered dialogue blocks extracted from one game asset bundle.
//
// Only the translated fields (enText, enName and the enText of choice and
// colored-text entries) are ever written back. Saving patches those paths
// into the original bytes, so every other key, its order and the file's
// indentation survive a round trip. An open File holds an advisory lock on
// the script so two imports cannot edit it at once.
package script
