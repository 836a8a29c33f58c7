package codeinsight

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// ReleaseDetails is the payload of the system release endpoint
type ReleaseDetails struct {
	ReleaseName string `json:"fnci.release.name"`
	BuildNumber string `json:"fnci.release.build,omitempty"`
}

// ReleaseDetails returns the release the Code Insight server is running
func (c *Client) ReleaseDetails(ctx context.Context) (*ReleaseDetails, error) {
	var details ReleaseDetails
	if err := c.getJSON(ctx, "/v1/system/release", &details); err != nil {
		return nil, fmt.Errorf("failed to get release details: %w", err)
	}

	if details.ReleaseName == "" {
		c.logger.Warn().Msg("Release details have no fnci.release.name")
	}

	return &details, nil
}

// ReleaseVersion returns the release name with all whitespace removed ("2024 R1" -> "2024R1")
func (d *ReleaseDetails) ReleaseVersion() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, d.ReleaseName)
}
