package mongodb

import (
	"fmt"

	"github.com/calumari/jwalk"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ObjectIDDirective decodes {"$oid": "<hex>"} into a bson.ObjectID.
// {"$oid": true} generates a fresh ObjectID.
var ObjectIDDirective = jwalk.NewDirective("oid", unmarshalObjectID)

func unmarshalObjectID(dec *jsontext.Decoder) (bson.ObjectID, error) {
	var raw any
	if err := json.UnmarshalDecode(dec, &raw); err != nil {
		return bson.ObjectID{}, err
	}
	switch v := raw.(type) {
	case bool:
		if !v {
			return bson.ObjectID{}, fmt.Errorf("$oid bool must be true to generate an id")
		}
		return bson.NewObjectID(), nil
	case string:
		return bson.ObjectIDFromHex(v)
	default:
		return bson.ObjectID{}, fmt.Errorf("invalid $oid payload type %T", v)
	}
}

// RegisterTypes registers the MongoDB directives on reg.
func RegisterTypes(reg *jwalk.Registry) error {
	return reg.Register(ObjectIDDirective)
}
