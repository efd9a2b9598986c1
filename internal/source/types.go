package source

import "crypto/sha256"

type (
	// FileID uniquely identifies a source file version within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (editor buffer, test, stdin).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	// FileHadBOM marks content that starts with a UTF-8 BOM. The BOM stays in Content.
	FileHadBOM
	// FileDecoded marks content converted from a legacy code page to UTF-8.
	FileDecoded
	// FileScript marks a standalone script file (.vbs) without ASP delimiters.
	FileScript
)

// File captures metadata and content for a single source file.
// Content is kept byte-for-byte: ranges produced by the scanner and the
// parser must reconstruct it exactly, so no CRLF or BOM normalization happens.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}

// Len returns the content length as uint32.
func (f *File) Len() uint32 {
	return MustOffset(len(f.Content))
}

// Span returns the span covering the whole file.
func (f *File) Span() Span {
	return Span{File: f.ID, Start: 0, End: f.Len()}
}

// Text returns the content covered by span. Out-of-range bounds are clamped.
func (f *File) Text(span Span) string {
	n := f.Len()
	start, end := min(span.Start, n), min(span.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// Revise returns the next version of f with new content. ID, path and
// flags carry over; the line index and hash are rebuilt.
func (f *File) Revise(content []byte) *File {
	flags := f.Flags &^ FileHadBOM
	if hasBOM(content) {
		flags |= FileHadBOM
	}
	return &File{
		ID:      f.ID,
		Path:    f.Path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}
