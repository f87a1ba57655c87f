package report

import "strings"

// extractBlocks walks a section body line by line and groups the lines into
// ordered content blocks. Adjacent prose lines merge into one paragraph,
// adjacent bullet lines into one list; key/value lines stand alone. Blank
// lines terminate whichever run is open and are otherwise discarded. Every
// non-blank line ends up in exactly one block.
func extractBlocks(body string) []Block {
	lines := strings.Split(body, "\n")

	var blocks []Block
	var para []string
	var bullets []string

	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, Paragraph(strings.Join(para, " ")))
			para = nil
		}
	}
	flushBullets := func() {
		if len(bullets) > 0 {
			blocks = append(blocks, BulletList(bullets))
			bullets = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			flushPara()
			flushBullets()
			continue
		}

		next, nextIdx := nextNonBlank(lines, i+1)
		c := classifyLine(lines[i], next)
		switch c.kind {
		case lineBullet:
			flushPara()
			bullets = append(bullets, c.text)
		case lineKeyValue:
			flushPara()
			flushBullets()
			blocks = append(blocks, KeyValue(c.key, c.value))
			if c.consumedNext {
				i = nextIdx
			}
		default:
			flushBullets()
			para = append(para, c.text)
		}
	}
	flushPara()
	flushBullets()
	return blocks
}

// nextNonBlank returns the next non-blank line at or after index from, and
// its index. Returns "" and len(lines) when none remains.
func nextNonBlank(lines []string, from int) (string, int) {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i], i
		}
	}
	return "", len(lines)
}
