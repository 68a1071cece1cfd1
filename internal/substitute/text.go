package substitute

import (
	"bytes"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen bounds how much of a file is inspected for NUL bytes.
const sniffLen = 8000

// byteOrderMarks are encoding signatures that identify a file as text.
var byteOrderMarks = [][]byte{
	{0xEF, 0xBB, 0xBF},       // UTF-8
	{0x00, 0x00, 0xFE, 0xFF}, // UTF-32 BE
	{0xFF, 0xFE, 0x00, 0x00}, // UTF-32 LE
	{0xFE, 0xFF},             // UTF-16 BE
	{0xFF, 0xFE},             // UTF-16 LE
}

// IsText classifies content as text or binary. A byte-order mark means text;
// otherwise any NUL byte in the leading window means binary, and the rest is
// decided by MIME sniffing (text/plain or one of its descendants).
// Empty content is text.
func IsText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	for _, bom := range byteOrderMarks {
		if bytes.HasPrefix(data, bom) {
			return true
		}
	}
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
