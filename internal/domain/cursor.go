package domain

// Cursor is the tracker position: the file being consumed and the
// zero-based index of the last line turned into a Record.
type Cursor struct {
	File   string `json:"file"`
	Offset int    `json:"offset"`
}

// IsZero reports whether no file has been selected yet.
func (c Cursor) IsZero() bool { return c.File == "" }
