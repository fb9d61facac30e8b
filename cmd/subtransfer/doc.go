// Command subtransfer imports translated subtitle files into game dialogue
// scripts.
//
// `subtransfer import <script> <subtitle>` aligns the subtitle's cues with
// the script's blocks, writes the translations back and prints any
// diagnostics. `cues` previews how a subtitle file is read, `history`
// browses past runs and `config` manages the configuration file.
package main
