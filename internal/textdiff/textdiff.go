// Package textdiff computes line-level unified diffs and similarity ratios
// between two texts. It wraps sergi/go-diff's diff-match-patch in line mode so
// large responses diff at line granularity instead of character granularity.
package textdiff

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines kept around each hunk.
const contextLines = 3

// newMatcher returns a diff-match-patch instance with the time-based cutoff
// disabled. Zero timeout keeps diffs optimal and deterministic under load.
func newMatcher() *diffmatchpatch.DiffMatchPatch {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return dmp
}

// Unified returns a unified-format line diff between a and b: two file header
// records, then per hunk one "@@" record followed by context (" "), removal
// ("-"), and addition ("+") records. Identical inputs produce no records at
// all. The record count is the significance signal consumed by divergence
// detection, so every header and context line counts.
func Unified(a, b string) []string {
	aLines := splitLines(a)
	bLines := splitLines(b)

	groups := groupedOpcodes(lineOpcodes(a, b), len(aLines), len(bLines))
	if len(groups) == 0 {
		return nil
	}

	out := make([]string, 0, 16)
	out = append(out, "--- a", "+++ b")
	for _, group := range groups {
		first, last := group[0], group[len(group)-1]
		out = append(out, fmt.Sprintf("@@ -%s +%s @@",
			formatRange(first.i1, last.i2), formatRange(first.j1, last.j2)))
		for _, op := range group {
			switch op.tag {
			case opEqual:
				for _, line := range aLines[op.i1:op.i2] {
					out = append(out, " "+line)
				}
			case opDelete:
				for _, line := range aLines[op.i1:op.i2] {
					out = append(out, "-"+line)
				}
			case opInsert:
				for _, line := range bLines[op.j1:op.j2] {
					out = append(out, "+"+line)
				}
			}
		}
	}
	return out
}

// Ratio returns a character-level similarity ratio in [0, 1] computed as
// 2*M/T, where M is the number of characters shared by the longest matching
// blocks and T is the total length of both inputs. 1.0 means identical; two
// empty strings are identical.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1.0
	}

	dmp := newMatcher()
	matched := 0
	for _, d := range dmp.DiffMain(a, b, false) {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(d.Text)
		}
	}
	return 2.0 * float64(matched) / float64(total)
}

type opTag uint8

const (
	opEqual opTag = iota
	opDelete
	opInsert
)

// opcode is a run of lines sharing one diff operation. Ranges are half-open
// line indexes into the a (i1:i2) and b (j1:j2) line slices.
type opcode struct {
	tag            opTag
	i1, i2, j1, j2 int
}

// lineOpcodes diffs a against b at line granularity and converts the result
// into opcode runs. Uses the chars-to-lines encoding so the core diff operates
// on one rune per unique line.
func lineOpcodes(a, b string) []opcode {
	dmp := newMatcher()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var codes []opcode
	ai, bi := 0, 0
	for _, d := range diffs {
		n := len(splitLines(d.Text))
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			codes = append(codes, opcode{opEqual, ai, ai + n, bi, bi + n})
			ai += n
			bi += n
		case diffmatchpatch.DiffDelete:
			codes = append(codes, opcode{opDelete, ai, ai + n, bi, bi})
			ai += n
		case diffmatchpatch.DiffInsert:
			codes = append(codes, opcode{opInsert, ai, ai, bi, bi + n})
			bi += n
		}
	}
	return codes
}

// groupedOpcodes trims leading/trailing equal runs to the context window and
// splits opcode sequences into hunk groups wherever an equal run exceeds twice
// the context. A lone all-equal group means the inputs match and yields nothing.
func groupedOpcodes(codes []opcode, aLen, bLen int) [][]opcode {
	if len(codes) == 0 {
		codes = []opcode{{opEqual, 0, aLen, 0, bLen}}
	}
	if first := codes[0]; first.tag == opEqual {
		codes[0] = opcode{opEqual, max(first.i1, first.i2-contextLines), first.i2,
			max(first.j1, first.j2-contextLines), first.j2}
	}
	if last := codes[len(codes)-1]; last.tag == opEqual {
		codes[len(codes)-1] = opcode{opEqual, last.i1, min(last.i2, last.i1+contextLines),
			last.j1, min(last.j2, last.j1+contextLines)}
	}

	var groups [][]opcode
	var group []opcode
	for _, c := range codes {
		if c.tag == opEqual && c.i2-c.i1 > 2*contextLines {
			group = append(group, opcode{opEqual, c.i1, min(c.i2, c.i1+contextLines),
				c.j1, min(c.j2, c.j1+contextLines)})
			groups = append(groups, group)
			group = []opcode{{opEqual, max(c.i1, c.i2-contextLines), c.i2,
				max(c.j1, c.j2-contextLines), c.j2}}
			continue
		}
		group = append(group, c)
	}
	if len(group) > 0 && !(len(group) == 1 && group[0].tag == opEqual) {
		groups = append(groups, group)
	}
	return groups
}

// formatRange renders a hunk range in unified style: 1-based start, length
// elided when exactly one line, start decremented for empty ranges.
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}

// splitLines splits text on newlines, dropping the empty tail produced by a
// trailing newline so "a\nb\n" and "a\nb" both yield two lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
