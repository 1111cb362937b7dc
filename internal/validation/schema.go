package validation

import (
	"sort"
	"strings"
)

// Kind hints how a field is rendered and echoed.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindPassword
)

// Field describes one form input.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Kind        Kind
	Rules       []Rule
}

// Schema is an ordered list of fields.
type Schema []Field

// Field names shared by the auth forms.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Validate runs every field's rules against values and returns the
// failures. An empty result means the form is valid.
func (s Schema) Validate(values map[string]string) Errors {
	errs := Errors{}
	for _, f := range s {
		if msg := s.ValidateField(f.Name, values); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

// ValidateField returns the first failing message for the named field, or
// "" when it passes or no such field exists.
func (s Schema) ValidateField(name string, values map[string]string) string {
	f, ok := s.Lookup(name)
	if !ok {
		return ""
	}
	for _, rule := range f.Rules {
		if msg := rule(values[name], values); msg != "" {
			return msg
		}
	}
	return ""
}

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the field called name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Errors maps field names to messages. It implements error so a failed
// validation can travel through ordinary error returns.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when there are no failures.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func emailField(label, placeholder string) Field {
	return Field{
		Name:        FieldEmail,
		Label:       label,
		Placeholder: placeholder,
		Kind:        KindEmail,
		Rules: []Rule{
			Required("Email is required"),
			Email("Please enter a valid email"),
		},
	}
}

// LoginSchema is the sign-in form.
func LoginSchema(p PasswordPolicy) Schema {
	return Schema{
		emailField("Email", "you@example.com"),
		{Name: FieldPassword, Label: "Password", Placeholder: "Password", Kind: KindPassword, Rules: p.passwordRules()},
	}
}

// RegisterSchema is the sign-up form.
func RegisterSchema(p PasswordPolicy) Schema {
	return Schema{
		{
			Name:        FieldName,
			Label:       "Full Name",
			Placeholder: "Full Name",
			Kind:        KindText,
			Rules:       []Rule{Required("Name is required")},
		},
		emailField("Email", "you@example.com"),
		{Name: FieldPassword, Label: "Password", Placeholder: "Password", Kind: KindPassword, Rules: p.passwordRules()},
		{
			Name:        FieldConfirmPassword,
			Label:       "Confirm Password",
			Placeholder: "Confirm Password",
			Kind:        KindPassword,
			Rules: []Rule{
				Required("Confirm Password is required"),
				Matches(FieldPassword, "Passwords do not match"),
			},
		},
	}
}

// ForgotPasswordSchema is the password-reset request form.
func ForgotPasswordSchema() Schema {
	return Schema{emailField("Email Address", "Enter your email")}
}
