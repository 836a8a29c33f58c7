// Package reportdata collects the project data the Project Lock Utility reports on
package reportdata

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ajkula/projectlockutility/pkg/codeinsight"
	"github.com/ajkula/projectlockutility/pkg/reporting"
)

// ProjectSource is the part of the Code Insight API the gatherer reads from
type ProjectSource interface {
	GetProject(ctx context.Context, projectID string) (*codeinsight.Project, error)
	GetChildProjects(ctx context.Context, projectID string) ([]codeinsight.ProjectRef, error)
}

// Gatherer resolves the project hierarchy and lock state for a report run
type Gatherer struct {
	source ProjectSource
	logger zerolog.Logger
}

// NewGatherer creates a new data gatherer
func NewGatherer(source ProjectSource, logger zerolog.Logger) *Gatherer {
	return &Gatherer{
		source: source,
		logger: logger,
	}
}

// Gather returns an updated copy of rc carrying the top-level project name and the
// project hierarchy. A project the server refuses to return is recorded on the
// context's Error field; any other failure is returned as an error.
func (g *Gatherer) Gather(ctx context.Context, rc *reporting.ReportContext) (*reporting.ReportContext, error) {
	out := rc.Clone()

	topLevel, err := g.source.GetProject(ctx, rc.ProjectID)
	if err != nil {
		if apiErr, ok := codeinsight.AsAPIError(err); ok && apiErr.IsClientError() {
			out.Error = []string{fmt.Sprintf("Unable to retrieve project information for project ID %s: %s",
				rc.ProjectID, apiErr.Message)}
			g.logger.Warn().Str("projectID", rc.ProjectID).Err(err).Msg("Top level project lookup rejected")
			return out, nil
		}
		return nil, err
	}

	out.TopLevelProjectName = topLevel.Name
	out.Projects = []reporting.ProjectSummary{summarize(topLevel, 0, 0)}
	g.logger.Debug().Str("project", topLevel.Name).Int("projectID", topLevel.ID).Msg("Top level project resolved")

	if rc.Options.IncludeChildProjects() {
		children, err := g.collectDescendants(ctx, topLevel.ID)
		if err != nil {
			return nil, err
		}
		out.Projects = append(out.Projects, children...)
	}

	out.LockSummary = Summarize(out.Projects)
	g.logger.Debug().
		Int("projects", out.LockSummary.Total).
		Int("locked", out.LockSummary.Locked).
		Msg("Project hierarchy collected")

	return out, nil
}

type pending struct {
	ref      codeinsight.ProjectRef
	parentID int
	depth    int
}

// collectDescendants walks the hierarchy breadth first, visiting each project once
func (g *Gatherer) collectDescendants(ctx context.Context, rootID int) ([]reporting.ProjectSummary, error) {
	visited := map[int]bool{rootID: true}
	queue, err := g.children(ctx, rootID, 1)
	if err != nil {
		return nil, err
	}

	var projects []reporting.ProjectSummary
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if visited[next.ref.ID] {
			continue
		}
		visited[next.ref.ID] = true

		project, err := g.source.GetProject(ctx, strconv.Itoa(next.ref.ID))
		if err != nil {
			return nil, err
		}
		projects = append(projects, summarize(project, next.parentID, next.depth))

		grandChildren, err := g.children(ctx, next.ref.ID, next.depth+1)
		if err != nil {
			return nil, err
		}
		queue = append(queue, grandChildren...)
	}

	return projects, nil
}

func (g *Gatherer) children(ctx context.Context, parentID, depth int) ([]pending, error) {
	refs, err := g.source.GetChildProjects(ctx, strconv.Itoa(parentID))
	if err != nil {
		return nil, err
	}

	out := make([]pending, 0, len(refs))
	for _, ref := range refs {
		out = append(out, pending{ref: ref, parentID: parentID, depth: depth})
	}
	return out, nil
}

func summarize(p *codeinsight.Project, parentID, depth int) reporting.ProjectSummary {
	return reporting.ProjectSummary{
		ID:          p.ID,
		Name:        p.Name,
		Owner:       p.Owner,
		Description: p.Description,
		Locked:      p.Locked,
		ParentID:    parentID,
		Depth:       depth,
	}
}

// Summarize counts locked and unlocked projects
func Summarize(projects []reporting.ProjectSummary) reporting.LockSummary {
	summary := reporting.LockSummary{Total: len(projects)}
	for _, p := range projects {
		if p.Locked {
			summary.Locked++
		} else {
			summary.Unlocked++
		}
	}
	return summary
}
