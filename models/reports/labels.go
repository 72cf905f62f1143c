package reports

import (
	"strings"
	"time"
)

// The console ships in two locales only: English (en-US) and Paraguayan
// Spanish (es-PY). Numeric logic never depends on the locale; only the
// human-readable labels and date formats do.
type labelSet struct {
	tag     string
	english bool
}

func newLabelSet(locale string) labelSet {
	tag := strings.TrimSpace(locale)
	english := strings.HasPrefix(strings.ToLower(tag), "en")
	if tag == "" || (!english && !strings.HasPrefix(strings.ToLower(tag), "es")) {
		tag = "es-PY"
		english = false
	}
	return labelSet{tag: tag, english: english}
}

func (l labelSet) pick(en string, es string) string {
	if l.english {
		return en
	}
	return es
}

func (l labelSet) dateLabel(t time.Time) string {
	if l.english {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("02/01/2006")
}
