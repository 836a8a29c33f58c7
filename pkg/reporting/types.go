package reporting

import "time"

// ReportName is the display name of the report registered in Code Insight
const ReportName = "Project Lock Utility"

// ReportOptions holds the validated report options
type ReportOptions struct {
	// Normalized option values keyed by option name
	Values map[string]string `json:"values"`

	// Validation messages; nil when every option was accepted
	Errors []string `json:"errors,omitempty"`
}

// HasErrors reports whether validation recorded any error.
// It checks presence, so an accepted option set always has nil Errors.
func (o *ReportOptions) HasErrors() bool {
	return o != nil && o.Errors != nil
}

// Value returns the normalized value of an option
func (o *ReportOptions) Value(name string) string {
	if o == nil {
		return ""
	}
	return o.Values[name]
}

// IncludeChildProjects reports whether the hierarchy below the top-level project is included
func (o *ReportOptions) IncludeChildProjects() bool {
	return o.Value(OptionIncludeChildProjects) == "true"
}

// OptionIncludeChildProjects is the only option recognized by the report
const OptionIncludeChildProjects = "includeChildProjects"

// ReportContext is the record threaded through a single report run
type ReportContext struct {
	RunID          string `json:"run_id"`
	ProjectID      string `json:"project_id"`
	ReportName     string `json:"report_name"`
	ReportVersion  string `json:"report_version"`
	ReleaseVersion string `json:"release_version"`

	FileNameTimeStamp string    `json:"file_name_timestamp"`
	ReportTimeStamp   string    `json:"report_timestamp"`
	GeneratedAt       time.Time `json:"generated_at"`

	Options *ReportOptions `json:"options"`

	// Set by the data gatherer
	TopLevelProjectName string           `json:"top_level_project_name,omitempty"`
	Projects            []ProjectSummary `json:"projects,omitempty"`
	LockSummary         LockSummary      `json:"lock_summary"`

	// Base name shared by every artifact and the upload archive
	FileNameBase string `json:"file_name_base"`

	// Soft failures. Either validation messages or a single gathering error.
	Error []string `json:"error,omitempty"`
}

// HasError reports whether a soft failure was recorded on the context
func (c *ReportContext) HasError() bool {
	return c != nil && c.Error != nil
}

// Clone returns a copy that collaborators can update without touching the caller's value
func (c *ReportContext) Clone() *ReportContext {
	clone := *c
	if c.Projects != nil {
		clone.Projects = append([]ProjectSummary(nil), c.Projects...)
	}
	if c.Error != nil {
		clone.Error = append([]string(nil), c.Error...)
	}
	return &clone
}

// ProjectSummary describes one project of the reported hierarchy
type ProjectSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Owner       string `json:"owner,omitempty"`
	Description string `json:"description,omitempty"`
	Locked      bool   `json:"locked"`
	ParentID    int    `json:"parent_id,omitempty"`
	Depth       int    `json:"depth"`
}

// LockSummary counts locked and unlocked projects in the hierarchy
type LockSummary struct {
	Total    int `json:"total"`
	Locked   int `json:"locked"`
	Unlocked int `json:"unlocked"`
}

// Artifacts is the set of files produced for one report run.
// Report and error artifacts share this shape so packaging does not care which produced them.
type Artifacts struct {
	// File names in the order they were produced
	AllFormats []string `json:"all_formats"`

	// Absolute paths aligned with AllFormats
	Files []string `json:"files"`

	// Directory holding the files
	OutputDir string `json:"output_dir"`
}

// add registers a produced file
func (a *Artifacts) add(path string, name string) {
	a.AllFormats = append(a.AllFormats, name)
	a.Files = append(a.Files, path)
}
