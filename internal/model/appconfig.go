package model

// FitSettings holds the parameters of a single fitting run.
type FitSettings struct {
	GridSize int `json:"grid_size"` // Side length N of the N x N grid
}

// DefaultFitSettings returns settings for the standard 4 x 4 grid.
func DefaultFitSettings() FitSettings {
	return FitSettings{GridSize: 4}
}

// Validate checks that the settings describe a usable grid.
func (s FitSettings) Validate() error {
	if s.GridSize < 1 {
		return ErrInvalidGridSize
	}
	return nil
}

// ExportConfig lists optional output files written after a successful fit.
// An empty path disables that export.
type ExportConfig struct {
	PDFPath      string `json:"pdf_path"`
	LabelsPath   string `json:"labels_path"`
	WorkbookPath string `json:"workbook_path"`
	DXFPath      string `json:"dxf_path"`
	PNGPath      string `json:"png_path"`
	ReportPath   string `json:"report_path"`
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	GridSize int          `json:"grid_size"`
	LogLevel string       `json:"log_level"` // "debug", "info", "warn", "error"
	LogFile  string       `json:"log_file"`  // empty = log to stderr
	Exports  ExportConfig `json:"exports"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultFitSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultFitSettings()
	return AppConfig{
		GridSize: defaults.GridSize,
		LogLevel: "warn",
	}
}

// ApplyToSettings copies the configured values into a FitSettings struct.
func (c AppConfig) ApplyToSettings(s *FitSettings) {
	s.GridSize = c.GridSize
}
