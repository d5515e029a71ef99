package source

// SourceFile is one file in a SourceSet's in-memory tree. Path is relative
// to the owning set's root. Code is only materialized through Code(),
// which fires any pending pre-read actions exactly once — this is what
// lets an InsertionPointPrinter register a marker-writing hook without
// perturbing files no renderer ever reads.
type SourceFile struct {
	set  *SourceSet
	path string

	code    string
	changed bool

	alreadyRead    bool
	preReadActions []func(*SourceFile)

	// insertionBase/insertionBlocks let repeated At(point).Add calls on the
	// same marker compose in call order: insertionBase is a snapshot of
	// the content as it stood just before the first insertion, and
	// insertionBlocks accumulates the text queued after each matching
	// base line, replayed in full on every Add.
	insertionBase   *string
	insertionBlocks map[int][]string
}

func newSourceFile(set *SourceSet, path, code string, changed bool) *SourceFile {
	return &SourceFile{set: set, path: path, code: code, changed: changed}
}

// Path returns this file's path relative to its SourceSet's root.
func (f *SourceFile) Path() string { return f.path }

// Changed reports whether this file was created in this run or has been
// overwritten or edited since it was read; the content itself is not
// compared with what is on disk.
func (f *SourceFile) Changed() bool { return f.changed }

// Code returns the file's current text, first running any pre-read
// actions registered on it (via prepare_code) exactly once.
func (f *SourceFile) Code() string {
	if !f.alreadyRead {
		f.alreadyRead = true
		actions := f.preReadActions
		f.preReadActions = nil
		for _, action := range actions {
			action(f)
		}
	}
	return f.code
}

// Overwrite replaces the file's contents wholesale and marks it changed.
// Any insertion-point markers present in the previous contents are lost;
// prefer At(point).Add(...) when a marker-preserving edit is possible.
func (f *SourceFile) Overwrite(code string) {
	f.code = code
	f.changed = true
	f.insertionBase = nil
	f.insertionBlocks = nil
}

// setCode is used internally (by InsertionBuilder.Add) to mutate content
// without forcing another Code() materialization.
func (f *SourceFile) setCode(code string) {
	f.code = code
	f.changed = true
}

// At begins an insertion at point, returning a builder whose Add appends
// lines after every line in the file containing point's marker.
func (f *SourceFile) At(point InsertionPoint) *InsertionBuilder {
	return &InsertionBuilder{file: f, point: point}
}

// Delete removes this file from its owning SourceSet, per SourceSet.Delete.
// The removal at Write is recursive (os.RemoveAll): if the path names a
// directory on disk, the whole directory is removed; nothing guards
// against that.
func (f *SourceFile) Delete() error {
	return f.set.Delete(f.path)
}

func (f *SourceFile) addPreReadAction(action func(*SourceFile)) {
	if f.alreadyRead {
		action(f)
		return
	}
	f.preReadActions = append(f.preReadActions, action)
}
