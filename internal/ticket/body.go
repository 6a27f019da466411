package ticket

import "strings"

const progressLogHeading = "## Progress Log"

// AppendProgressLog adds a dated entry to the append-only progress log
// section of a ticket body, creating the section if it is missing. The
// rest of the body is opaque to the engine.
func AppendProgressLog(body, date, text string) string {
	if !strings.Contains(body, progressLogHeading) {
		body = strings.TrimRight(body, "\n") + "\n\n" + progressLogHeading + "\n"
	}
	return strings.TrimRight(body, "\n") + "\n- " + date + ": " + text + "\n"
}
