package domain

// Default setting values.
const (
	// DefaultStoreDir holds one annotation document per opened file.
	DefaultStoreDir = ".annotations"

	// DefaultTerminators are the sentence-ending punctuation marks.
	DefaultTerminators = ".!?"
)

// StoreSettings controls where annotation documents are kept.
type StoreSettings struct {
	// Dir is the directory holding one annotation document per filename.
	Dir string

	// Path pins a single annotation document shared by every file.
	// Empty means documents are scoped per filename under Dir.
	Path string
}

// Scoped reports whether documents are kept per filename.
func (s StoreSettings) Scoped() bool {
	return s.Path == ""
}

// SegmenterSettings controls sentence segmentation.
type SegmenterSettings struct {
	// Terminators is the set of sentence-ending marks, one rune each.
	Terminators string
}

// ExportSettings controls export output.
type ExportSettings struct {
	// Indent pretty-prints exported JSON.
	Indent bool
}

// TUISettings controls the terminal UI.
type TUISettings struct {
	// ShowCaption renders the full caption above the current sentence.
	ShowCaption bool
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Store     StoreSettings
	Segmenter SegmenterSettings
	Export    ExportSettings
	TUI       TUISettings
}

// DefaultAppSettings returns settings with default values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Dir: DefaultStoreDir,
		},
		Segmenter: SegmenterSettings{
			Terminators: DefaultTerminators,
		},
		Export: ExportSettings{
			Indent: true,
		},
		TUI: TUISettings{
			ShowCaption: true,
		},
	}
}
