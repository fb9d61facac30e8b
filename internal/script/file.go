package script

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"subtransfer/internal/fileutil"
)

// ErrLocked is returned when another process holds the script's lock.
var ErrLocked = errors.New("script is locked by another import")

// ErrInvalid marks script files that are not usable translation files.
var ErrInvalid = errors.New("invalid translation file")

const lockSuffix = ".lock"

// File is a loaded translation script.
type File struct {
	path   string
	raw    []byte
	kind   string
	bundle string
	blocks []Block
	lock   *flock.Flock
}

// Open reads path and takes its advisory lock. Callers must Close the file.
func Open(path string) (*File, error) {
	lock := flock.New(path + lockSuffix)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock script %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	file, err := Parse(data)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	file.path = path
	file.lock = lock
	return file, nil
}

// Parse decodes a translation file held in memory. The result has no path
// and cannot be saved with Save; use Bytes instead.
func Parse(data []byte) (*File, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalid)
	}
	root := gjson.ParseBytes(data)
	text := root.Get("text")
	if !text.IsArray() {
		return nil, fmt.Errorf("%w: missing text array", ErrInvalid)
	}

	file := &File{
		raw:    append([]byte(nil), data...),
		kind:   root.Get("type").String(),
		bundle: root.Get("bundle").String(),
	}
	text.ForEach(func(_, value gjson.Result) bool {
		file.blocks = append(file.blocks, decodeBlock(len(file.blocks), value))
		return true
	})
	return file, nil
}

func decodeBlock(position int, v gjson.Result) Block {
	block := Block{
		Index:          position,
		SourceText:     v.Get("jpText").String(),
		TranslatedText: v.Get("enText").String(),
		Choices:        decodeEntries(v.Get("choices")),
		Colored:        decodeEntries(v.Get("coloredText")),
	}
	if idx := v.Get("blockIdx"); idx.Exists() {
		block.Index = int(idx.Int())
	}
	if name := v.Get("jpName"); name.Exists() {
		block.Named = true
		block.SourceName = name.String()
		block.TranslatedName = v.Get("enName").String()
	}
	return block
}

func decodeEntries(list gjson.Result) []Entry {
	if !list.IsArray() {
		return nil
	}
	var entries []Entry
	list.ForEach(func(_, v gjson.Result) bool {
		entries = append(entries, Entry{
			SourceText:     v.Get("jpText").String(),
			TranslatedText: v.Get("enText").String(),
		})
		return true
	})
	return entries
}

// Path returns the file the script was opened from.
func (f *File) Path() string { return f.path }

// Kind returns the script type tag, e.g. KindStory.
func (f *File) Kind() string { return f.kind }

// Bundle returns the asset bundle the script was extracted from.
func (f *File) Bundle() string { return f.bundle }

// Blocks returns the script's blocks. The slice is shared: edits made
// through it are what Save writes.
func (f *File) Blocks() []Block { return f.blocks }

// Bytes renders the script with the current translated fields patched in.
func (f *File) Bytes() ([]byte, error) {
	out := f.raw
	var err error
	for i := range f.blocks {
		b := &f.blocks[i]
		prefix := "text." + strconv.Itoa(i) + "."
		if out, err = sjson.SetBytes(out, prefix+"enText", b.TranslatedText); err != nil {
			return nil, fmt.Errorf("set block %d text: %w", b.Index, err)
		}
		if b.Named {
			if out, err = sjson.SetBytes(out, prefix+"enName", b.TranslatedName); err != nil {
				return nil, fmt.Errorf("set block %d name: %w", b.Index, err)
			}
		}
		if out, err = setEntries(out, prefix+"choices.", b.Choices); err != nil {
			return nil, fmt.Errorf("set block %d choices: %w", b.Index, err)
		}
		if out, err = setEntries(out, prefix+"coloredText.", b.Colored); err != nil {
			return nil, fmt.Errorf("set block %d colored text: %w", b.Index, err)
		}
	}
	return out, nil
}

func setEntries(out []byte, prefix string, entries []Entry) ([]byte, error) {
	var err error
	for i, e := range entries {
		if out, err = sjson.SetBytes(out, prefix+strconv.Itoa(i)+".enText", e.TranslatedText); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Save writes the translated fields back to the script file atomically.
func (f *File) Save() error {
	if f.path == "" {
		return errors.New("script has no backing file")
	}
	data, err := f.Bytes()
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(f.path, data, 0o644); err != nil {
		return fmt.Errorf("save script %s: %w", f.path, err)
	}
	f.raw = data
	return nil
}

// Backup copies the script file, as it is on disk, next to itself.
func (f *File) Backup() (string, error) {
	if f.path == "" {
		return "", errors.New("script has no backing file")
	}
	return fileutil.Backup(f.path)
}

// Close releases the script's lock.
func (f *File) Close() error {
	if f.lock == nil {
		return nil
	}
	err := f.lock.Unlock()
	f.lock = nil
	if err != nil {
		return fmt.Errorf("unlock script %s: %w", f.path, err)
	}
	return nil
}
