package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajkula/projectlockutility/pkg/reporting"
)

// ErrMissingOption is returned when a required option is absent from the options string.
// It is a caller bug and aborts the run instead of producing an error report.
var ErrMissingOption = errors.New("missing required report option")

var (
	trueOptions  = map[string]bool{"true": true, "t": true, "yes": true, "y": true}
	falseOptions = map[string]bool{"false": true, "f": true, "no": true, "n": true}
)

// OptionValidator handles normalization and validation of report options
type OptionValidator struct{}

// NewOptionValidator creates a new option validator
func NewOptionValidator() *OptionValidator {
	return &OptionValidator{}
}

// Validate normalizes the raw options. Bad values are recorded on the result's
// Errors; only a missing required option is returned as an error.
func (v *OptionValidator) Validate(raw map[string]string) (*reporting.ReportOptions, error) {
	includeChildProjects, ok := raw[reporting.OptionIncludeChildProjects]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingOption, reporting.OptionIncludeChildProjects)
	}

	options := &reporting.ReportOptions{
		Values: make(map[string]string, len(raw)),
	}
	for key, value := range raw {
		options.Values[key] = value
	}

	if normalized, ok := NormalizeBool(includeChildProjects); ok {
		options.Values[reporting.OptionIncludeChildProjects] = normalized
	} else {
		options.Errors = append(options.Errors, fmt.Sprintf(
			"Invalid option for including child projects: <b>%s</b>.  Valid options are <b>True/False</b>",
			includeChildProjects))
	}

	return options, nil
}

// NormalizeBool maps a yes/no style value to "true" or "false"
func NormalizeBool(value string) (string, bool) {
	lower := strings.ToLower(value)
	switch {
	case trueOptions[lower]:
		return "true", true
	case falseOptions[lower]:
		return "false", true
	default:
		return "", false
	}
}
