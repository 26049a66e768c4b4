package mongodb

import (
	"fmt"

	"github.com/calumari/jwalk"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kbukum/dbfixtures/errors"
)

// ToDocuments converts the fixtures of one collection into bson.D values,
// keeping field order. Every element must be a JSON object.
func ToDocuments(collection string, arr jwalk.Array) ([]any, error) {
	docs := make([]any, 0, len(arr))
	for i, element := range arr {
		doc, ok := element.(jwalk.Document)
		if !ok {
			return nil, errors.InvalidFixture(collection, i, fmt.Sprintf("expected a JSON object, got %T", element))
		}
		docs = append(docs, toBSONDocument(doc))
	}
	return docs, nil
}

func toBSONDocument(doc jwalk.Document) bson.D {
	bdoc := make(bson.D, 0, len(doc))
	for _, f := range doc {
		bdoc = append(bdoc, bson.E{Key: f.Key, Value: toBSONValue(f.Value)})
	}
	return bdoc
}

func toBSONArray(arr jwalk.Array) bson.A {
	barr := make(bson.A, 0, len(arr))
	for _, v := range arr {
		barr = append(barr, toBSONValue(v))
	}
	return barr
}

func toBSONValue(v any) any {
	switch val := v.(type) {
	case jwalk.Document:
		return toBSONDocument(val)
	case jwalk.Array:
		return toBSONArray(val)
	default:
		return v
	}
}
