package config

import (
	"errors"

	"github.com/invopop/jsonschema"
)

var ErrGeneratedSchemaIsNil = errors.New("generated config JSON Schema is nil")

// JSONSchema describes config.yaml, including the server, log and toolkit
// sections, for editors and the json-schema command.
func JSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// yaml is the file format; the json tags mirror the yaml keys
		FieldNameTag: "yaml",
	}
	schema := r.Reflect(&Config{})
	if schema == nil {
		return nil, ErrGeneratedSchemaIsNil
	}
	schema.Title = "zep-ner configuration"

	return schema.MarshalJSON()
}
