package encoder

import (
	"strings"
)

// BlockKind is the layout role of one paragraph.
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockHeading1
	BlockHeading2
	BlockBullet
	BlockNumbered
	BlockParagraph
)

const maxTitleRunes = 100

// Block is a classified paragraph.
type Block struct {
	Kind BlockKind
	Text string
}

var numberedPrefixes = []string{"1. ", "2. ", "3. ", "4. ", "5. "}

// Classify splits a body on blank lines and assigns each paragraph a layout role.
// The first paragraph is the title; heading markers are removed from heading
// text, list markers are kept.
func Classify(body string) []Block {
	var blocks []Block
	for i, raw := range strings.Split(body, "\n\n") {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		switch {
		case i == 0:
			blocks = append(blocks, Block{Kind: BlockTitle, Text: truncate(stripHeadingMarker(p), maxTitleRunes)})
		case strings.HasPrefix(p, "# "):
			blocks = append(blocks, Block{Kind: BlockHeading1, Text: strings.TrimSpace(p[2:])})
		case strings.HasPrefix(p, "## "):
			blocks = append(blocks, Block{Kind: BlockHeading2, Text: strings.TrimSpace(p[3:])})
		case strings.HasPrefix(p, "- "), strings.HasPrefix(p, "* "):
			blocks = append(blocks, Block{Kind: BlockBullet, Text: p})
		case hasAnyPrefix(p, numberedPrefixes):
			blocks = append(blocks, Block{Kind: BlockNumbered, Text: p})
		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: p})
		}
	}
	return blocks
}

// stripHeadingMarker removes a leading run of '#' followed by a space.
func stripHeadingMarker(line string) string {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n >= len(line) || line[n] != ' ' {
		return line
	}
	return strings.TrimLeft(line[n:], " ")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
