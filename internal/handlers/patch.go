package handlers

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindPatch decodes a partial-update body into req and also reports which
// keys the client actually sent, so an explicit null can be told apart
// from an absent field.
func bindPatch(ctx *gin.Context, req interface{}) (map[string]json.RawMessage, error) {
	if err := ctx.ShouldBindBodyWith(req, binding.JSON); err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage

	if err := ctx.ShouldBindBodyWith(&fields, binding.JSON); err != nil {
		return nil, err
	}

	return fields, nil
}

// explicitNull reports whether the client sent `"key": null`.
func explicitNull(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
