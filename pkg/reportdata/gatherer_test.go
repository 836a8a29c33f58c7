package reportdata

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajkula/projectlockutility/pkg/codeinsight"
	"github.com/ajkula/projectlockutility/pkg/reporting"
)

type fakeSource struct {
	projects map[int]codeinsight.Project
	children map[int][]codeinsight.ProjectRef
	err      error
	calls    []string
}

func (f *fakeSource) GetProject(_ context.Context, id string) (*codeinsight.Project, error) {
	f.calls = append(f.calls, "project:"+id)
	if f.err != nil {
		return nil, f.err
	}
	n, _ := strconv.Atoi(id)
	p, ok := f.projects[n]
	if !ok {
		return nil, &codeinsight.APIError{StatusCode: http.StatusNotFound, Message: "Project does not exist"}
	}
	return &p, nil
}

func (f *fakeSource) GetChildProjects(_ context.Context, id string) ([]codeinsight.ProjectRef, error) {
	f.calls = append(f.calls, "children:"+id)
	n, _ := strconv.Atoi(id)
	return f.children[n], nil
}

func newHierarchy() *fakeSource {
	return &fakeSource{
		projects: map[int]codeinsight.Project{
			42: {ID: 42, Name: "Demo App", Locked: true},
			43: {ID: 43, Name: "Demo Lib", Locked: false},
			44: {ID: 44, Name: "Demo UI", Locked: true},
			45: {ID: 45, Name: "Shared Utils", Locked: false},
		},
		children: map[int][]codeinsight.ProjectRef{
			42: {{ID: 43, Name: "Demo Lib"}, {ID: 44, Name: "Demo UI"}},
			43: {{ID: 45, Name: "Shared Utils"}},
			// 45 is reachable twice
			44: {{ID: 45, Name: "Shared Utils"}},
		},
	}
}

func newContext(includeChildren string) *reporting.ReportContext {
	return &reporting.ReportContext{
		ProjectID:  "42",
		ReportName: reporting.ReportName,
		Options: &reporting.ReportOptions{
			Values: map[string]string{reporting.OptionIncludeChildProjects: includeChildren},
		},
	}
}

func TestGather_TopLevelOnly(t *testing.T) {
	source := newHierarchy()
	gatherer := NewGatherer(source, zerolog.Nop())

	in := newContext("false")
	out, err := gatherer.Gather(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "Demo App", out.TopLevelProjectName)
	require.Len(t, out.Projects, 1)
	assert.Equal(t, reporting.LockSummary{Total: 1, Locked: 1}, out.LockSummary)
	assert.Equal(t, []string{"project:42"}, source.calls)

	// the caller's context is left untouched
	assert.Empty(t, in.TopLevelProjectName)
	assert.Nil(t, in.Projects)
}

func TestGather_WithChildren(t *testing.T) {
	gatherer := NewGatherer(newHierarchy(), zerolog.Nop())

	out, err := gatherer.Gather(context.Background(), newContext("true"))
	require.NoError(t, err)
	require.False(t, out.HasError())

	var names []string
	for _, p := range out.Projects {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Demo App", "Demo Lib", "Demo UI", "Shared Utils"}, names)
	assert.Equal(t, reporting.LockSummary{Total: 4, Locked: 2, Unlocked: 2}, out.LockSummary)

	shared := out.Projects[3]
	assert.Equal(t, 43, shared.ParentID)
	assert.Equal(t, 2, shared.Depth)
}

func TestGather_UnknownProjectIsSoftError(t *testing.T) {
	gatherer := NewGatherer(newHierarchy(), zerolog.Nop())

	rc := newContext("true")
	rc.ProjectID = "999"
	out, err := gatherer.Gather(context.Background(), rc)
	require.NoError(t, err)

	require.True(t, out.HasError())
	require.Len(t, out.Error, 1)
	assert.Contains(t, out.Error[0], "999")
	assert.Contains(t, out.Error[0], "Project does not exist")
	assert.Empty(t, out.TopLevelProjectName)
}

func TestGather_TransportFailureIsFatal(t *testing.T) {
	source := newHierarchy()
	source.err = errors.New("connection reset by peer")
	gatherer := NewGatherer(source, zerolog.Nop())

	out, err := gatherer.Gather(context.Background(), newContext("false"))
	require.Error(t, err)
	assert.Nil(t, out)
}
