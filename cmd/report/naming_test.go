package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "My-Project-v2-0-", SanitizeFileName("My Project/v2.0!"))
	assert.Equal(t, "Demo-App", SanitizeFileName("Demo App"))
	assert.Equal(t, "-a-b", SanitizeFileName("  a__b"))
	assert.Equal(t, "", SanitizeFileName(""))
}

func TestNewTimestamps(t *testing.T) {
	now := time.Date(2024, time.April, 3, 14, 5, 9, 987654321, time.Local)

	ts, err := NewTimestamps(now)
	require.NoError(t, err)

	assert.Equal(t, "20240403-140509", ts.FileName)
	assert.Equal(t, "April 03, 2024 at 14:05:09", ts.Report)
	assert.Equal(t, 0, ts.At.Nanosecond())

	reparsed, err := time.Parse(ReportTimeLayout, ts.Report)
	require.NoError(t, err)
	assert.Equal(t, ts.FileName, reparsed.Format(FileNameTimeLayout))
}

func TestNewTimestamps_KeepsInstantOutsideUTC(t *testing.T) {
	now := time.Date(2024, time.April, 3, 14, 5, 9, 500, time.FixedZone("CEST", 2*60*60))

	ts, err := NewTimestamps(now)
	require.NoError(t, err)

	assert.Equal(t, "20240403-140509", ts.FileName)
	assert.True(t, ts.At.Equal(now.Truncate(time.Second)), "got %s, want %s", ts.At, now.Truncate(time.Second))
}

func TestFileNameBases(t *testing.T) {
	assert.Equal(t, "Demo-App-42-Project_Lock_Utility-20240403-140509",
		ReportFileNameBase("Demo App", "42", "20240403-140509"))
	assert.Equal(t, "Project_Lock_Utility-Creation_Error-20240403-140509",
		ErrorFileNameBase("20240403-140509"))
}
