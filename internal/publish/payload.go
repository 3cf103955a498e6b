// Package publish sends validated models to a socket.io endpoint.
//
// A model is emitted as a single event whose argument is a JSON document:
//
//	{"version": "8.6.0", "objects": [{"type": "Zone", "id": "Z1", "fields": {...}}]}
//
// Objects without an identity carry a null id. Field values keep their
// kinds: numbers are JSON numbers, text and sentinels are strings.
package publish

import (
	"fmt"

	"github.com/vk/idfgo/internal/object"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Payload builds the cty document describing objs.
func Payload(version string, objs []*object.Object) cty.Value {
	items := make([]cty.Value, 0, len(objs))
	for _, obj := range objs {
		id := cty.NullVal(cty.String)
		if obj.HasID() {
			id = cty.StringVal(obj.ID())
		}
		items = append(items, cty.ObjectVal(map[string]cty.Value{
			"type":   cty.StringVal(obj.Type()),
			"id":     id,
			"fields": obj.CtyValue(),
		}))
	}

	list := cty.EmptyTupleVal
	if len(items) > 0 {
		list = cty.TupleVal(items)
	}
	return cty.ObjectVal(map[string]cty.Value{
		"version": cty.StringVal(version),
		"objects": list,
	})
}

// Encode renders a payload as JSON.
func Encode(val cty.Value) ([]byte, error) {
	data, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}
