package signup

import "github.com/dmitrijs2005/studiobook/internal/validation"

// Field identifies one input of the signup form.
type Field int

const (
	FieldDisplayName Field = iota
	FieldEmail
	FieldPhoneNumber
	FieldPassword
	FieldConfirmPassword

	fieldCount
)

// Fields lists the inputs in form order. The first failing one is the one
// reported on submit.
var Fields = []Field{FieldDisplayName, FieldEmail, FieldPhoneNumber, FieldPassword, FieldConfirmPassword}

var fieldNames = [fieldCount]string{
	FieldDisplayName:     "displayName",
	FieldEmail:           "email",
	FieldPhoneNumber:     "phoneNumber",
	FieldPassword:        "password",
	FieldConfirmPassword: "confirmPassword",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// DefaultCountryCode is preselected in the country code selector.
const DefaultCountryCode = "+91"

// Draft is the user's input plus per-field touched flags and errors.
type Draft struct {
	values      [fieldCount]string
	touched     [fieldCount]bool
	errors      [fieldCount]string
	CountryCode string
}

func newDraft(countryCode string) Draft {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return Draft{CountryCode: countryCode}
}

func (d Draft) Value(f Field) string { return d.values[f] }

func (d Draft) Touched(f Field) bool { return d.touched[f] }

// Error is the message recorded for f, or "".
func (d Draft) Error(f Field) string { return d.errors[f] }

// set stores v and clears the field's error, as typing does.
func (d *Draft) set(f Field, v string) {
	d.values[f] = v
	d.errors[f] = ""
}

// validate runs the validator behind f against the current input.
func (d *Draft) validate(f Field) validation.Result {
	v := d.values[f]
	switch f {
	case FieldDisplayName:
		return validation.ValidateDisplayName(v)
	case FieldEmail:
		return validation.ValidateEmail(v)
	case FieldPhoneNumber:
		return validation.ValidatePhoneNumber(v)
	case FieldPassword:
		return validation.ValidatePassword(v)
	case FieldConfirmPassword:
		return validation.ValidateConfirmPassword(d.values[FieldPassword], v)
	}
	return validation.Result{Valid: true}
}

// validateAll marks every field touched, records every error and returns
// the message of the first failing field in form order.
func (d *Draft) validateAll() (first string, ok bool) {
	ok = true
	for _, f := range Fields {
		d.touched[f] = true
		r := d.validate(f)
		if r.Valid {
			d.errors[f] = ""
			continue
		}
		d.errors[f] = r.Message()
		if ok {
			first = r.Message()
			ok = false
		}
	}
	return first, ok
}

// FullPhoneNumber is the country code and the phone input joined by one
// space, as the backend stores it.
func (d Draft) FullPhoneNumber() string {
	return d.CountryCode + " " + d.values[FieldPhoneNumber]
}
