// Package wizard implements the multi-step complaint submission form: a
// declarative step table, per-field validation and the state machine that
// gates step transitions and final submission.
package wizard

import (
	"appealapp/src/validation"
)

// FormState is the transient client-side state of one wizard session. It
// is bound to a single user interaction and is not safe for concurrent use.
type FormState struct {
	kind        Kind
	step        int
	values      map[string]string
	consents    map[string]bool
	attachments map[string]*Attachment
	errors      map[string]string
}

// NewFormState starts an empty individual-flow session on step 1.
func NewFormState() *FormState {
	f := &FormState{}
	f.reset(KindIndividual)
	return f
}

func (f *FormState) reset(kind Kind) {
	for _, a := range f.attachments {
		a.Release()
	}
	f.kind = kind
	f.step = 1
	f.values = make(map[string]string)
	f.consents = make(map[string]bool)
	f.attachments = make(map[string]*Attachment)
	f.errors = make(map[string]string)
}

// Reset returns the session to its initial empty state, keeping the
// current flow. Held attachments are released.
func (f *FormState) Reset() {
	f.reset(f.kind)
}

// SetKind switches between the individual and organization flows. This is
// a hard reset: every collected value is discarded and the step returns
// to 1.
func (f *FormState) SetKind(kind Kind) {
	f.reset(kind)
}

func (f *FormState) Kind() Kind { return f.kind }
func (f *FormState) Step() int  { return f.step }

// Errors returns the live field → message map.
func (f *FormState) Errors() map[string]string { return f.errors }

// Value returns a collected text field.
func (f *FormState) Value(name string) string { return f.values[name] }

// Consent returns a consent flag.
func (f *FormState) Consent(name string) bool { return f.consents[name] }

// Attachment returns the held attachment for a file field, or nil.
func (f *FormState) Attachment(name string) *Attachment { return f.attachments[name] }

// Values returns a copy of all collected text fields.
func (f *FormState) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// SetField stores a text field and re-validates it. Only the named field's
// error entry changes.
func (f *FormState) SetField(name, value string) {
	f.values[name] = value
	f.validateField(name)
}

// SetConsent stores a consent flag and re-validates it.
func (f *FormState) SetConsent(name string, checked bool) {
	f.consents[name] = checked
	f.validateField(name)
}

// SetAttachment hands an attachment to the form, releasing any previous
// one under the same field, and re-validates it. Passing nil clears the
// field.
func (f *FormState) SetAttachment(name string, a *Attachment) {
	if prev := f.attachments[name]; prev != nil && prev != a {
		prev.Release()
	}
	if a == nil {
		delete(f.attachments, name)
	} else {
		f.attachments[name] = a
	}
	f.validateField(name)
}

// validateField applies the field's own rule and updates only its error
// entry.
func (f *FormState) validateField(name string) {
	var msg string
	switch {
	case IsConsentField(name):
		msg = validation.Consent(f.consents[name])
	case IsAttachmentField(name):
		a := f.attachments[name]
		if a == nil {
			msg = validation.MsgRequired
		} else {
			msg = validation.Attachment(a.Name, a.Size, a.ContentType)
		}
	default:
		msg = validation.Field(name, f.values[name])
	}
	if msg == "" {
		delete(f.errors, name)
	} else {
		f.errors[name] = msg
	}
}

// validateStep checks every field the given step requires, filling the
// error map. Reports whether all of them pass.
func (f *FormState) validateStep(index int) bool {
	steps := Steps(f.kind)
	if index < 1 || index > len(steps) {
		return false
	}
	ok := true
	for _, name := range steps[index-1].Fields {
		f.validateField(name)
		if f.errors[name] != "" {
			ok = false
		}
	}
	return ok
}

// Advance moves to the next step if every field required by the current
// step passes its rule. The step never exceeds the flow's last step.
// Returns false, with the error map populated, when blocked.
func (f *FormState) Advance() bool {
	if !f.validateStep(f.step) {
		return false
	}
	if f.step < StepCount(f.kind) {
		f.step++
	}
	return true
}

// Retreat moves one step back, floored at 1, and clears the error map.
// Collected values are kept.
func (f *FormState) Retreat() {
	if f.step > 1 {
		f.step--
	}
	f.errors = make(map[string]string)
}

// CanSubmit reports whether the session is on its final step and every
// required field across the whole flow, consent flags included, passes
// validation. Failing fields are left in the error map.
func (f *FormState) CanSubmit() bool {
	if f.step != StepCount(f.kind) {
		return false
	}
	ok := true
	for i := 1; i <= StepCount(f.kind); i++ {
		if !f.validateStep(i) {
			ok = false
		}
	}
	return ok
}
