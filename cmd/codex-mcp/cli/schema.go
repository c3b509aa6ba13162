// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"reflect"
	"strconv"
	"strings"
)

// Schema is a JSON Schema representation covering the subset needed
// for MCP tool input descriptions. It maps directly to the JSON Schema
// objects that MCP's inputSchema field expects.
type Schema struct {
	// Type is the JSON Schema type: "object", "string", or "integer".
	Type string `json:"type"`

	// Description is a human-readable explanation of the parameter.
	// Populated from the desc struct tag.
	Description string `json:"description,omitempty"`

	// Properties maps property names to their schemas. Only set when
	// Type is "object".
	Properties map[string]*Schema `json:"properties,omitempty"`

	// Required lists property names that must be provided. Only set
	// when Type is "object".
	Required []string `json:"required,omitempty"`

	// Default is the default value for the parameter. Populated from
	// the default struct tag, parsed to the field's Go type so an int
	// marshals as a number, or set at runtime with [Schema.SetDefault].
	Default any `json:"default,omitempty"`
}

// ParamsSchema generates a JSON Schema from a parameter struct's type
// information. Property names come from json struct tags, descriptions
// from desc tags, and defaults from default tags.
//
// Fields are included when they have a json tag that is not "-".
// Fields without a json tag are excluded, which lets a struct carry
// command-line-only flags (such as a file to read a diff from).
// Embedded structs are flattened into the parent object.
//
// A field is marked required when it has a required:"true" tag. Fields
// with a default tag are always optional.
//
// params must be a struct or a pointer to one.
func ParamsSchema(params any) (*Schema, error) {
	value := reflect.ValueOf(params)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, Internal("params must be a struct or pointer to struct, got %T", params)
	}

	return buildObjectSchema(value.Type())
}

// SetDefault sets the default of property when the schema has it.
// Tool servers use it to publish configured defaults that are only
// known at runtime.
func (s *Schema) SetDefault(property string, value any) {
	if prop, ok := s.Properties[property]; ok {
		prop.Default = value
	}
}

// buildObjectSchema constructs a JSON Schema object from a struct type.
func buildObjectSchema(structType reflect.Type) (*Schema, error) {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}

	for i := range structType.NumField() {
		field := structType.Field(i)

		// Embedded structs: recurse and merge their properties into
		// the parent.
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, err := buildObjectSchema(field.Type)
			if err != nil {
				return nil, Internal("embedded %s: %w", field.Name, err)
			}
			for name, prop := range embedded.Properties {
				schema.Properties[name] = prop
			}
			schema.Required = append(schema.Required, embedded.Required...)
			continue
		}

		if !field.IsExported() {
			continue
		}

		propertyName := jsonPropertyName(field)
		if propertyName == "" || propertyName == "-" {
			continue
		}

		propSchema, err := fieldSchema(field)
		if err != nil {
			return nil, Internal("field %s: %w", field.Name, err)
		}

		schema.Properties[propertyName] = propSchema

		// Mark as required if explicitly tagged and no default provided.
		if field.Tag.Get("required") == "true" && field.Tag.Get("default") == "" {
			schema.Required = append(schema.Required, propertyName)
		}
	}

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}

	return schema, nil
}

// jsonPropertyName extracts the JSON property name from a struct field's
// json tag. Returns "" if no json tag, or "-" if the field is excluded.
func jsonPropertyName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// fieldSchema builds a JSON Schema for a single string or int struct
// field based on its Go type and struct tags.
func fieldSchema(field reflect.StructField) (*Schema, error) {
	description := field.Tag.Get("desc")

	var schema *Schema
	switch field.Type.Kind() {
	case reflect.String:
		schema = &Schema{Type: "string", Description: description}
	case reflect.Int:
		schema = &Schema{Type: "integer", Description: description}
	default:
		return nil, Internal("unsupported type %s", field.Type)
	}

	if defaultString := field.Tag.Get("default"); defaultString != "" {
		defaultValue, err := parseDefault(field.Type, defaultString)
		if err != nil {
			return nil, Internal("default: %w", err)
		}
		schema.Default = defaultValue
	}
	return schema, nil
}

// parseDefault parses a default value string into the field's Go type
// so it marshals to the correct JSON type.
func parseDefault(fieldType reflect.Type, value string) (any, error) {
	if fieldType.Kind() == reflect.Int {
		return strconv.Atoi(value)
	}
	return value, nil
}
