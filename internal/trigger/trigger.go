// Package trigger decides when a document edit should schedule a lint run.
package trigger

import "time"

// Trigger is the run policy selected by the "linter.run" setting.
type Trigger int

const (
	// OnSave lints a document after it is written to disk.
	OnSave Trigger = iota
	// OnType lints a document while it is being edited, debounced.
	OnType
	// Off never lints.
	Off
)

// Setting values accepted by Parse.
const (
	OnSaveValue = "onSave"
	OnTypeValue = "onType"
	OffValue    = "off"
)

// OnTypeDebounce is the quiet period required after the last keystroke before linting.
const OnTypeDebounce = 250 * time.Millisecond

// Parse maps a setting value to a Trigger. Anything other than the exact
// "onType" or "onSave" values yields Off so a typo never starts a linter.
func Parse(value string) Trigger {
	switch value {
	case OnTypeValue:
		return OnType
	case OnSaveValue:
		return OnSave
	default:
		return Off
	}
}

// String returns the setting value for t.
func (t Trigger) String() string {
	switch t {
	case OnSave:
		return OnSaveValue
	case OnType:
		return OnTypeValue
	default:
		return OffValue
	}
}

// Debounce returns the delayer window used for documents linted under t.
func (t Trigger) Debounce() time.Duration {
	if t == OnType {
		return OnTypeDebounce
	}
	return 0
}

// Enabled reports whether t schedules lint runs at all.
func (t Trigger) Enabled() bool {
	return t == OnSave || t == OnType
}
