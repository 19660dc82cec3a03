// Package validator holds structural checks for social API payloads.
//
// Predicates take decoded JSON (or any value that marshals to JSON) and
// report whether it has the expected shape. They never panic: input that
// cannot be inspected is simply invalid.
package validator

import (
	"encoding/json"
	"math"
)

// Predicate reports whether a value has the expected shape
type Predicate func(v any) bool

// Users checks a user id to display name mapping
func Users(v any) bool {
	obj, ok := object(v)
	if !ok {
		return false
	}
	for _, name := range obj {
		if !isString(name) {
			return false
		}
	}
	return true
}

// User checks a single user with an optional post count
func User(v any) bool {
	obj, ok := object(v)
	if !ok {
		return false
	}
	return isString(obj["id"]) &&
		isString(obj["name"]) &&
		optional(obj, "postCount", isNumber)
}

// Post checks a post as returned upstream or as enriched locally
func Post(v any) bool {
	obj, ok := object(v)
	if !ok {
		return false
	}
	return isInteger(obj["id"]) &&
		isInteger(obj["userId"]) &&
		isString(obj["content"]) &&
		optional(obj, "userName", isString) &&
		optional(obj, "commentCount", isNumber) &&
		optional(obj, "timestamp", isString)
}

// PostWithCommentCount checks a post that must carry a comment count
func PostWithCommentCount(v any) bool {
	obj, ok := object(v)
	if !ok {
		return false
	}
	return Post(obj) && isNumber(obj["commentCount"])
}

// Comment checks a comment
func Comment(v any) bool {
	obj, ok := object(v)
	if !ok {
		return false
	}
	return isInteger(obj["id"]) &&
		isInteger(obj["postId"]) &&
		isString(obj["content"]) &&
		optional(obj, "userId", isNumber) &&
		optional(obj, "userName", isString)
}

// Numbers checks a list of integers
func Numbers(v any) bool {
	return Each(isInteger)(v)
}

// Each lifts a predicate to a list: the value must be an array whose
// elements all satisfy pred. An empty array is valid.
func Each(pred Predicate) Predicate {
	return func(v any) bool {
		arr, ok := normalize(v).([]any)
		if !ok {
			return false
		}
		for _, item := range arr {
			if !pred(item) {
				return false
			}
		}
		return true
	}
}

// normalize converts v into the generic form produced by encoding/json
// (map[string]any, []any, float64, string, bool, nil)
func normalize(v any) any {
	switch v.(type) {
	case nil, string, float64, bool:
		return v
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func object(v any) (map[string]any, bool) {
	obj, ok := normalize(v).(map[string]any)
	return obj, ok && obj != nil
}

// optional passes when key is absent, or present and satisfying pred
func optional(obj map[string]any, key string, pred func(any) bool) bool {
	v, present := obj[key]
	if !present {
		return true
	}
	return pred(v)
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNumber(v any) bool {
	_, ok := v.(float64)
	return ok
}

func isInteger(v any) bool {
	f, ok := normalize(v).(float64)
	return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
}
