package quota

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level is a coarse usage state used for styling progress bars.
type Level string

const (
	// LevelOK means there is comfortable room left.
	LevelOK Level = "ok"
	// LevelWarning means the near-limit threshold was reached.
	LevelWarning Level = "warning"
	// LevelExhausted means nothing more can be created.
	LevelExhausted Level = "exhausted"
)

const unlimitedLabel = "Unlimited"

// UsageLabel renders usage as "current / limit", e.g. "8 / 10" or "3 / Unlimited".
func (l Limit) UsageLabel() string {
	if l.IsUnlimited || l.Limit == nil {
		return strconv.Itoa(l.Current) + " / " + unlimitedLabel
	}

	return strconv.Itoa(l.Current) + " / " + strconv.Itoa(*l.Limit)
}

// RemainingLabel renders how many resources can still be created.
func (l Limit) RemainingLabel() string {
	if l.IsUnbounded() {
		return unlimitedLabel
	}

	return strconv.Itoa(l.Remaining) + " left"
}

// Level classifies the usage.
func (l Limit) Level() Level {
	switch {
	case !l.CanCreate:
		return LevelExhausted
	case l.IsNearLimit:
		return LevelWarning
	default:
		return LevelOK
	}
}

// Title returns the resource kind for headings, e.g. "Members".
func (k ResourceKind) Title() string {
	return cases.Title(language.English).String(string(k))
}
