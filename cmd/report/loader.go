package report

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
)

// isPOSIXShell reports whether report options arrive through the Linux launcher,
// which doubles the quotes inside the JSON string and wraps it in one more pair.
func isPOSIXShell() bool {
	return runtime.GOOS == "linux"
}

// DecodeOptions parses the --reportOptions argument into a string map
func DecodeOptions(raw string, posix bool) (map[string]string, error) {
	if posix {
		raw = unquoteShellArgument(raw)
	}

	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("report options are required")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse report options: %w", err)
	}

	options := make(map[string]string, len(decoded))
	for key, value := range decoded {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("report option %q must be a string, got %T", key, value)
		}
		options[key] = s
	}

	return options, nil
}

// unquoteShellArgument collapses doubled quotes and drops the wrapping characters
func unquoteShellArgument(raw string) string {
	runes := []rune(strings.ReplaceAll(raw, `""`, `"`))
	if len(runes) < 2 {
		return ""
	}
	return string(runes[1 : len(runes)-1])
}
