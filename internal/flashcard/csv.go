package flashcard

import (
	"bytes"
	"strings"
)

// MarshalCSV renders cards as one line per record in the form
// "question","answer". Every field is quoted, literal quotes are doubled,
// and nothing else is escaped, so embedded commas and newlines stay intact.
// Lines are joined by a single newline with no trailing newline and no
// header row. An empty slice yields empty output.
func MarshalCSV(cards []Flashcard) []byte {
	if len(cards) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for i, c := range cards {
		if i > 0 {
			buf.WriteByte('\n')
		}
		writeField(&buf, c.Question)
		buf.WriteByte(',')
		writeField(&buf, c.Answer)
	}
	return buf.Bytes()
}

func writeField(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(s, `"`, `""`))
	buf.WriteByte('"')
}
