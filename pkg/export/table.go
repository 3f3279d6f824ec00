package export

// Table is tabular export content. Rows are keyed by header.
type Table struct {
	Title   string
	Headers []string
	Rows    []map[string]string
}

// Renderer turns a table into file bytes.
type Renderer interface {
	Render(data Table) ([]byte, error)
	ContentType() string
	Extension() string
}
