package codeinsight

import (
	"context"
	"fmt"
	"net/url"
)

// Project is the subset of project information the report needs
type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Description string `json:"description"`
	Locked      bool   `json:"locked"`
}

// ProjectRef identifies a child project
type ProjectRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type projectResponse struct {
	Data Project `json:"data"`
}

type childrenResponse struct {
	Data []ProjectRef `json:"data"`
}

// GetProject returns the details of a single project
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var resp projectResponse
	if err := c.getJSON(ctx, "/projects/"+url.PathEscape(projectID), &resp); err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", projectID, err)
	}
	return &resp.Data, nil
}

// GetChildProjects returns the direct children of a project
func (c *Client) GetChildProjects(ctx context.Context, projectID string) ([]ProjectRef, error) {
	var resp childrenResponse
	if err := c.getJSON(ctx, "/projects/"+url.PathEscape(projectID)+"/children", &resp); err != nil {
		return nil, fmt.Errorf("failed to get child projects of %s: %w", projectID, err)
	}
	return resp.Data, nil
}
