package kafka

import (
	"fmt"

	"github.com/kbukum/dbfixtures/errors"
)

// DecodeMessages converts plain fixture objects of the form
// {"key": ..., "value": ..., "headers": {...}} into Message values. A
// missing key produces a null key.
func DecodeMessages(topic string, items []any) ([]any, error) {
	out := make([]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errors.InvalidFixture(topic, i, fmt.Sprintf("expected a message object, got %T", item))
		}
		msg := Message[any, any]{Key: obj["key"], Value: obj["value"]}
		if raw, ok := obj["headers"]; ok && raw != nil {
			headers, ok := raw.(map[string]any)
			if !ok {
				return nil, errors.InvalidFixture(topic, i, fmt.Sprintf("headers must be an object, got %T", raw))
			}
			msg.Headers = make(map[string]string, len(headers))
			for k, v := range headers {
				s, ok := v.(string)
				if !ok {
					return nil, errors.InvalidFixture(topic, i, fmt.Sprintf("header %q must be a string, got %T", k, v))
				}
				msg.Headers[k] = s
			}
		}
		out = append(out, msg)
	}
	return out, nil
}
