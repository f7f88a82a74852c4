package config

import (
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of the views file.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := reflector.Reflect(&File{})
	s.Title = "coherence views file"
	return s
}
