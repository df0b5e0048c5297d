package export

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/analyze"
	"github.com/invopop/jsonschema"
)

const orderedMapPkg = "github.com/wk8/go-ordered-map/v2"

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		Mapper:                     mapOrderedMap,
	}
}

// mapOrderedMap describes ordered maps as plain JSON objects, which is how
// they marshal.
func mapOrderedMap(t reflect.Type) *jsonschema.Schema {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() != orderedMapPkg || !strings.HasPrefix(t.Name(), "OrderedMap[") {
		return nil
	}
	return &jsonschema.Schema{Type: "object"}
}

// Schema returns the JSON Schema of the analysis result, for consumers that
// render the JSON export.
func Schema() ([]byte, error) {
	r := newReflector()
	schema := r.Reflect(&analyze.ChatStats{})
	schema.Title = "ChatStats"

	participant := r.Reflect(&analyze.ParticipantStats{})
	participant.Version = ""
	if prop, ok := schema.Properties.Get("participantStats"); ok {
		prop.AdditionalProperties = participant
	}
	if prop, ok := schema.Properties.Get("messagesByDate"); ok {
		prop.AdditionalProperties = &jsonschema.Schema{Type: "integer"}
	}

	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return b, nil
}
