package jsonx

import (
	jsoniter "github.com/json-iterator/go"
)

var jsonx = jsoniter.ConfigCompatibleWithStandardLibrary

// exact keeps JSON numbers as json.Number so amounts are never rounded through float64
var exact = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

func Marshal(v interface{}) ([]byte, error) {
	return jsonx.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return jsonx.Unmarshal(data, v)
}

// UnmarshalExact decodes like Unmarshal but preserves numbers verbatim.
func UnmarshalExact(data []byte, v interface{}) error {
	return exact.Unmarshal(data, v)
}
