package room

import (
	"strings"
	"time"
)

const icsTimeLayout = "20060102T150405Z"

// ToICS serializes the calendar's non-cancelled events as a single VCALENDAR
// block, one VEVENT each. Timestamps are emitted in UTC; now becomes the
// DTSTAMP of every component.
func ToICS(cal Calendar, now time.Time) string {
	var b strings.Builder
	writeICSLine(&b, "BEGIN:VCALENDAR")
	writeICSLine(&b, "VERSION:2.0")
	writeICSLine(&b, "PRODID:-//roomly//room calendar//EN")
	writeICSLine(&b, "CALSCALE:GREGORIAN")

	stamp := now.UTC().Format(icsTimeLayout)
	for _, ev := range cal.Events {
		if ev.Status == StatusCancelled {
			continue
		}
		summary := ev.Title
		if summary == "" {
			summary = string(ev.Type)
		}
		writeICSLine(&b, "BEGIN:VEVENT")
		writeICSLine(&b, "UID:"+ev.ID+"@"+cal.RoomID)
		writeICSLine(&b, "DTSTAMP:"+stamp)
		writeICSLine(&b, "DTSTART:"+ev.StartsAt.UTC().Format(icsTimeLayout))
		writeICSLine(&b, "DTEND:"+ev.EndsAt.UTC().Format(icsTimeLayout))
		writeICSLine(&b, "SUMMARY:"+escapeICSText(summary))
		if ev.Notes != "" {
			writeICSLine(&b, "DESCRIPTION:"+escapeICSText(ev.Notes))
		}
		writeICSLine(&b, "END:VEVENT")
	}

	writeICSLine(&b, "END:VCALENDAR")
	return b.String()
}

func writeICSLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

var icsEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\n", `\n`,
)

func escapeICSText(s string) string {
	return icsEscaper.Replace(s)
}
