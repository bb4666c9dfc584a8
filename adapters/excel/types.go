package excel

// RawData is a file's header and data rows before type coercion
type RawData struct {
	Headers []string   // Column headers, unique after mangling
	Rows    [][]string // Data rows, each as wide as Headers
}
