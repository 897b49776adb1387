package validate

import "time"

// Trigger says what started a field validation.
type Trigger string

const (
	TriggerBlur   Trigger = "blur"
	TriggerSubmit Trigger = "submit"
	TriggerDirect Trigger = "direct"
)

// FieldResult is one field validation as seen by an Observer.
type FieldResult struct {
	Form    string
	Field   string
	Trigger Trigger
	State   FieldState
}

// SubmitResult is one form submission as seen by an Observer.
type SubmitResult struct {
	Form   string
	Valid  bool
	Fields []FieldResult
	Start  time.Time
	End    time.Time
}

// Observer receives validation results. Calls happen synchronously inside
// the event handler that produced them.
type Observer interface {
	ObserveField(FieldResult)
	ObserveSubmit(SubmitResult)
}

// Observers fans results out to several observers.
type Observers []Observer

// ObserveField implements Observer.
func (os Observers) ObserveField(r FieldResult) {
	for _, o := range os {
		if o != nil {
			o.ObserveField(r)
		}
	}
}

// ObserveSubmit implements Observer.
func (os Observers) ObserveSubmit(r SubmitResult) {
	for _, o := range os {
		if o != nil {
			o.ObserveSubmit(r)
		}
	}
}
