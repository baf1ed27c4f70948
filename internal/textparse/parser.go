// Package textparse turns loosely formatted model output into named buckets
// of lines. The same scanner is used for X-ray analyses, medical reports and
// meal plans; only the section vocabulary differs.
package textparse

import (
	"strings"
	"unicode"
)

// Rule maps a trigger phrase to a bucket path. Triggers are matched as
// case-insensitive substrings of a line; the first matching rule in the
// vocabulary wins, so order the vocabulary most-specific-first.
type Rule struct {
	Trigger string
	Bucket  string

	// PerDay buckets are namespaced under the most recent day header,
	// producing paths like "day2.lunch". While no day header has been
	// seen, content for a PerDay bucket is dropped.
	PerDay bool

	// Inline captures text after the first ":" on the header line itself,
	// for sections whose value lives on the header ("**Patient Info:** ...").
	Inline bool
}

type Vocabulary []Rule

// Document maps bucket path to the lines collected for it, in input order.
type Document map[string][]string

func (d Document) Get(path string) []string { return d[path] }

func (d Document) First(path string) string {
	if v := d[path]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (d Document) append(path, line string) {
	d[path] = append(d[path], line)
}

const bulletCutset = "-*• \t"

// Parse scans text line by line with a small state machine: header lines
// switch the current bucket (and are discarded), day headers switch the
// current day, everything else is content for the active bucket. Lines
// before any header are dropped, blank lines are skipped, and a line that
// looks like a header but matches no rule ends no bucket; it is treated as
// a continuation unless it starts with "**". Parse never fails; worst case
// is an empty document and the caller substitutes its fallback.
func Parse(text string, vocab Vocabulary) Document {
	doc := Document{}
	var active *Rule
	day := 0

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if n, ok := dayHeader(lower); ok {
			day = n
			continue
		}
		if rule, ok := matchRule(lower, vocab); ok {
			active = rule
			if rule.Inline {
				if _, rest, found := strings.Cut(line, ":"); found {
					if v := cleanInline(rest); v != "" {
						doc.append(bucketPath(rule, day), v)
					}
				}
			}
			if !rule.PerDay {
				day = 0
			}
			continue
		}
		if active == nil {
			continue
		}
		path, ok := activePath(active, day)
		if !ok {
			continue
		}
		if strings.HasPrefix(line, "**") {
			continue
		}
		if strings.IndexAny(line, "-*•") == 0 {
			item := strings.TrimSpace(strings.TrimLeft(line, bulletCutset))
			if item != "" {
				doc.append(path, item)
			}
			continue
		}
		doc.append(path, line)
	}
	return doc
}

func matchRule(lower string, vocab Vocabulary) (*Rule, bool) {
	for i := range vocab {
		if strings.Contains(lower, strings.ToLower(vocab[i].Trigger)) {
			return &vocab[i], true
		}
	}
	return nil, false
}

// dayHeader reports whether the line names a day section ("**Day 2:**",
// "Day 3: Friday"). The line must contain "day" and ":" with a digit soon
// after "day".
func dayHeader(lower string) (int, bool) {
	idx := strings.Index(lower, "day")
	if idx < 0 || !strings.Contains(lower, ":") {
		return 0, false
	}
	rest := lower[idx+len("day"):]
	for i, r := range rest {
		if i > 3 {
			break
		}
		if unicode.IsDigit(r) {
			return int(r - '0'), true
		}
		if r != ' ' && r != '\t' && r != '-' {
			break
		}
	}
	return 0, false
}

func bucketPath(r *Rule, day int) string {
	if r.PerDay && day > 0 {
		return dayPrefix(day) + "." + r.Bucket
	}
	return r.Bucket
}

func activePath(r *Rule, day int) (string, bool) {
	if r.PerDay && day == 0 {
		return "", false
	}
	return bucketPath(r, day), true
}

func dayPrefix(day int) string {
	return "day" + string(rune('0'+day))
}

func cleanInline(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "*")
	return strings.TrimSpace(s)
}
