package utils

import (
	"reflect"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans string fields tagged `sanitize:"strict"` (all markup removed)
// or `sanitize:"ugc"` (safe user-generated HTML kept).
type Sanitizer struct {
	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		strict: bluemonday.StrictPolicy(),
		ugc:    bluemonday.UGCPolicy(),
	}
}

// Struct sanitizes the tagged fields of the struct v points to, including embedded structs.
func (s *Sanitizer) Struct(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}

	s.walk(rv.Elem())
}

func (s *Sanitizer) walk(rv reflect.Value) {
	if rv.Kind() != reflect.Struct {
		return
	}

	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		value := rv.Field(i)

		if field.Anonymous {
			s.walk(reflect.Indirect(value))
			continue
		}

		if !field.IsExported() {
			continue
		}

		policy := s.policy(field.Tag.Get("sanitize"))
		if policy == nil {
			continue
		}

		switch {
		case value.Kind() == reflect.String:
			value.SetString(policy.Sanitize(value.String()))
		case value.Kind() == reflect.Pointer && !value.IsNil() && value.Elem().Kind() == reflect.String:
			value.Elem().SetString(policy.Sanitize(value.Elem().String()))
		}
	}
}

func (s *Sanitizer) policy(tag string) *bluemonday.Policy {
	switch tag {
	case "strict":
		return s.strict
	case "ugc":
		return s.ugc
	}

	return nil
}
