package aiclient

import (
	"regexp"
	"strings"
)

// CodeBlock represents one complete fenced region found in model output.
type CodeBlock struct {
	Language string // tag on the opening fence, e.g. "python"; may be empty
	Content  string // interior text with the fence lines removed
}

var filenameCommentRe = regexp.MustCompile(`(?m)^(?://|#)\s*filename:\s*(.+)$`)

// FilenameHint returns the filename named by a "filename:" comment inside
// the block, or "" when the block carries none.
func (b CodeBlock) FilenameHint() string {
	m := filenameCommentRe.FindStringSubmatch(b.Content)
	if len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}
