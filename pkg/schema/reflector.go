package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	invopopjsonschema "github.com/invopop/jsonschema"
)

type Reflector struct {
	Reflector *invopopjsonschema.Reflector
}

func NewReflector() *Reflector {
	return &Reflector{
		Reflector: &invopopjsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
		},
	}
}

func (r *Reflector) Reflect(t reflect.Type) *invopopjsonschema.Schema {
	return r.Reflector.ReflectFromType(t)
}

// MarshalIndent renders a schema as indented JSON with a trailing newline.
func MarshalIndent(s *invopopjsonschema.Schema) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json schema: %w", err)
	}

	return append(b, '\n'), nil
}
