package repository

// ArchiveRow is one flattened bill record handed to the archive-export
// collaborator: one row per bill, services collapsed into a summary
// string.
type ArchiveRow struct {
	BillNumber    string
	Date          string
	CustomerName  string
	Phone         string
	Services      string
	Subtotal      float64
	Tax           float64
	Discount      float64
	GrandTotal    float64
	PaymentMethod string
}

// ArchiveSink produces a downloadable spreadsheet from flattened bill
// rows. Used both for the ad hoc history export and the automatic
// day-rollover archive.
type ArchiveSink interface {
	Export(rows []ArchiveRow, filename string) error
	// Path reports where an exported filename lands, so callers can
	// stream the file back.
	Path(filename string) string
}
