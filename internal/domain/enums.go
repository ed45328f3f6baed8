package domain

// UserRole distinguishes item authors from learners answering them.
type UserRole string

const (
	RoleAuthor  UserRole = "author"
	RoleLearner UserRole = "learner"
)

// ValidRoles lists the roles accepted in access tokens.
var ValidRoles = map[UserRole]bool{
	RoleAuthor:  true,
	RoleLearner: true,
}

// RenderStatus represents the lifecycle of an item's accessible rendering.
type RenderStatus string

const (
	RenderStatusQueued     RenderStatus = "queued"
	RenderStatusProcessing RenderStatus = "processing"
	RenderStatusRendered   RenderStatus = "rendered"
	RenderStatusFailed     RenderStatus = "failed"
)

// ExportFormat selects the file type of a response export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ContentType returns the MIME type served for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ParseExportFormat validates a user supplied format, defaulting to CSV.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatXLSX:
		return ExportFormatXLSX, nil
	}
	return "", ErrInvalidExportFormat
}
