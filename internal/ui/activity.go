package ui

import (
	"strings"

	"github.com/hexlane/dappdesk/internal/activity"
)

// RenderEntry formats one activity entry as a single line.
func RenderEntry(e activity.Entry) string {
	var line string
	switch e.Kind {
	case activity.KindSuccess:
		line = Success(e.Message)
	case activity.KindError:
		line = Err(e.Message)
	default:
		line = Info(e.Message)
	}
	if e.Link != "" {
		line += "  " + Meta(e.Link)
	}
	return Meta(e.At.Format("15:04:05")) + "  " + line
}

// RenderLog formats a log snapshot, most recent first.
func RenderLog(entries []activity.Entry) string {
	if len(entries) == 0 {
		return Meta("  (no activity yet)")
	}
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString("  " + RenderEntry(e) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
