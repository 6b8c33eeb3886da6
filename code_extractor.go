package aiclient

import (
	"fmt"
	"regexp"
	"strings"
)

// CodeExtractor defines the interface for extracting code blocks from text.
type CodeExtractor interface {
	ExtractCodeBlocks(input string) []CodeBlock
}

// MarkdownCodeExtractor implements CodeExtractor for triple-backtick
// fences. A fence must open its own line at column zero: the opening fence
// may carry a language tag, the closing fence only trailing whitespace.
// Backticks inside prose or indented lines never count as fences.
type MarkdownCodeExtractor struct{}

var (
	openingFenceRe = regexp.MustCompile("^```([\\w+-]*)[ \t]*$")
	closingFenceRe = regexp.MustCompile("^```[ \t]*$")
)

// ExtractCodeBlocks parses the input text and returns every complete
// fenced region, in order of appearance. An opening fence with no matching
// close contributes nothing.
func (m MarkdownCodeExtractor) ExtractCodeBlocks(input string) []CodeBlock {
	blocks, _ := m.scan(input)
	return blocks
}

// HasSingleBlock reports whether the input contains exactly one complete
// fenced region. A dangling opening fence disqualifies the text even when
// one complete region exists, since the intended boundaries are ambiguous.
func (m MarkdownCodeExtractor) HasSingleBlock(input string) bool {
	blocks, dangling := m.scan(input)
	return len(blocks) == 1 && !dangling
}

// StripMarkdownPrefix returns the interior of the single fenced region,
// discarding the opening fence line (including any language tag) and the
// closing fence line. The interior keeps its whitespace exactly, including
// the newline that preceded the closing fence. When the input does not
// satisfy HasSingleBlock, a content-format error is returned instead of a
// best-effort guess.
func (m MarkdownCodeExtractor) StripMarkdownPrefix(input string) (string, error) {
	blocks, dangling := m.scan(input)
	if len(blocks) != 1 || dangling {
		return "", NewContentFormatError(CodeContentMultiBlock,
			fmt.Sprintf("expected exactly one fenced code block, found %d", len(blocks)),
			map[string]any{
				"blocks_found":       len(blocks),
				"unterminated_fence": dangling,
				"response_preview":   Preview(input),
			})
	}
	return blocks[0].Content, nil
}

// scan walks the input line by line, toggling between prose and fenced
// state. It returns the complete blocks plus whether some opening fence was
// left unterminated.
func (m MarkdownCodeExtractor) scan(input string) (blocks []CodeBlock, dangling bool) {
	lines := strings.Split(input, "\n")
	open := -1
	language := ""
	for i, line := range lines {
		if open < 0 {
			if match := openingFenceRe.FindStringSubmatch(line); match != nil {
				open = i
				language = match[1]
			}
			continue
		}
		if closingFenceRe.MatchString(line) {
			blocks = append(blocks, CodeBlock{
				Language: language,
				Content:  interior(lines[open+1 : i]),
			})
			open = -1
		}
	}
	return blocks, open >= 0
}

// interior joins the lines between the fences, restoring the newline that
// separated the last interior line from the closing fence.
func interior(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Preview truncates s for use in error metadata, so diagnostics never drag
// a full model response along.
func Preview(s string) string {
	const max = 100
	if len(s) > max {
		return s[:max]
	}
	return s
}
