package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
)

// Form and field names shared by the CLI, the console and the session file
const (
	FormPublishToken     = "publishTokenForm"
	FormPublishCrowdsale = "publishCrowdsaleForm"

	FieldPublishedTx      = "publishedTx"
	FieldPublishedAddress = "publishedAddress"
	FieldTokenAddress     = "tokenAddress"
)

var formFields = map[string][]string{
	FormPublishToken:     {FieldPublishedTx, FieldPublishedAddress},
	FormPublishCrowdsale: {FieldTokenAddress, FieldPublishedTx, FieldPublishedAddress},
}

// Form is a named set of text fields
type Form map[string]string

// Session holds the state the controller owns between user actions
type Session struct {
	Forms     map[string]Form                       `json:"forms"`
	ErrorMsg  string                                `json:"errormsg"`
	Results   map[DeploymentStep]*DeploymentResult `json:"results"`
	StartedAt time.Time                             `json:"startedAt"`
}

// NewSession creates an empty session with every known form present
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset clears all fields, results and the error region
func (s *Session) Reset() {
	s.Forms = make(map[string]Form, len(formFields))
	for name, fields := range formFields {
		form := make(Form, len(fields))
		for _, field := range fields {
			form[field] = ""
		}
		s.Forms[name] = form
	}
	s.ErrorMsg = ""
	s.Results = make(map[DeploymentStep]*DeploymentResult)
	s.StartedAt = time.Now()
}

// Normalize fills in forms and fields missing from a loaded session
func (s *Session) Normalize() {
	if s.Forms == nil {
		s.Forms = make(map[string]Form, len(formFields))
	}
	for name, fields := range formFields {
		if s.Forms[name] == nil {
			s.Forms[name] = make(Form, len(fields))
		}
		for _, field := range fields {
			if _, ok := s.Forms[name][field]; !ok {
				s.Forms[name][field] = ""
			}
		}
	}
	if s.Results == nil {
		s.Results = make(map[DeploymentStep]*DeploymentResult)
	}
}

// Field returns a field value, empty when unset
func (s *Session) Field(form, field string) string {
	if f, ok := s.Forms[form]; ok {
		return f[field]
	}
	return ""
}

// SetField writes a field, rejecting names outside the known forms
func (s *Session) SetField(form, field, value string) error {
	if !IsKnownField(form, field) {
		return fmt.Errorf("%w: %s.%s", domain.ErrUnknownFormField, form, field)
	}
	s.Normalize()
	s.Forms[form][field] = value
	return nil
}

// IsKnownField reports whether form.field exists
func IsKnownField(form, field string) bool {
	for _, f := range formFields[form] {
		if f == field {
			return true
		}
	}
	return false
}

// FormNames returns the known form names in stable order
func FormNames() []string {
	names := make([]string, 0, len(formFields))
	for name := range formFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldNames returns a form's fields in display order
func FieldNames(form string) []string {
	return append([]string(nil), formFields[form]...)
}
