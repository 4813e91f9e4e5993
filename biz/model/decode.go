package model

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/common/json"
)

var errNotObject = errors.New("request body must be a JSON object")

// ParseCreateOrderRequest decodes a create-order body field by field so a
// type mismatch is reported against the field that caused it. The body is
// read as JSON whatever the Content-Type says.
func ParseCreateOrderRequest(body []byte) (*CreateOrderRequest, error) {
	var raw map[string]stdjson.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ValidationError{
			Cause:  errNotObject,
			Fields: []FieldError{{Field: "body", Message: errNotObject.Error()}},
		}
	}

	req := &CreateOrderRequest{}
	var fields []FieldError
	check := func(name string, decode func(tok []byte) bool, want string) {
		tok, ok := raw[name]
		tok = bytes.TrimSpace(tok)
		if !ok || len(tok) == 0 || bytes.Equal(tok, []byte("null")) {
			fields = append(fields, missing(name))
			return
		}
		if !decode(tok) {
			fields = append(fields, FieldError{Field: name, Message: "expected " + want})
		}
	}

	check("symbol", func(tok []byte) bool { return decodeString(tok, &req.Symbol) }, "string")
	check("price", func(tok []byte) bool {
		if tok[0] == '"' {
			return false
		}
		v, err := strconv.ParseFloat(string(tok), 64)
		if err != nil {
			return false
		}
		req.Price = &v
		return true
	}, "number")
	check("quantity", func(tok []byte) bool {
		v, err := strconv.ParseInt(string(tok), 10, 64)
		if err != nil {
			return false
		}
		req.Quantity = &v
		return true
	}, "integer")
	check("order_type", func(tok []byte) bool { return decodeString(tok, &req.OrderType) }, "string")

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return req, nil
}

func decodeString(tok []byte, dst **string) bool {
	if tok[0] != '"' {
		return false
	}
	var s string
	if err := json.Unmarshal(tok, &s); err != nil {
		return false
	}
	*dst = &s
	return true
}
