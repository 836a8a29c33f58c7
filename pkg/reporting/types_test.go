package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportOptions_HasErrors(t *testing.T) {
	var nilOptions *ReportOptions
	assert.False(t, nilOptions.HasErrors())
	assert.False(t, (&ReportOptions{}).HasErrors())
	assert.True(t, (&ReportOptions{Errors: []string{"bad"}}).HasErrors())

	// presence is what counts, not length
	assert.True(t, (&ReportOptions{Errors: []string{}}).HasErrors())
}

func TestReportOptions_IncludeChildProjects(t *testing.T) {
	assert.True(t, (&ReportOptions{Values: map[string]string{OptionIncludeChildProjects: "true"}}).IncludeChildProjects())
	assert.False(t, (&ReportOptions{Values: map[string]string{OptionIncludeChildProjects: "false"}}).IncludeChildProjects())
	assert.False(t, (*ReportOptions)(nil).IncludeChildProjects())
}

func TestReportContext_Clone(t *testing.T) {
	rc := &ReportContext{
		ProjectID: "42",
		Projects:  []ProjectSummary{{ID: 42, Name: "Demo App"}},
		Error:     []string{"first"},
	}

	clone := rc.Clone()
	clone.Projects[0].Name = "changed"
	clone.Error = append(clone.Error, "second")
	clone.TopLevelProjectName = "Demo App"

	assert.Equal(t, "Demo App", rc.Projects[0].Name)
	assert.Equal(t, []string{"first"}, rc.Error)
	assert.Empty(t, rc.TopLevelProjectName)
}
