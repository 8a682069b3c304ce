package comparer

import (
	"encoding/json"

	"github.com/google/go-cmp/cmp"
)

// JSONRawMessage compara json.RawMessage pelo valor decodificado, ignorando
// espaços e ordem das chaves. Vazio e "null" são equivalentes.
func JSONRawMessage() cmp.Option {
	return cmp.Comparer(func(x, y json.RawMessage) bool {
		xv, xok := decodeRaw(x)
		yv, yok := decodeRaw(y)
		if !xok || !yok {
			return string(x) == string(y)
		}
		return cmp.Equal(xv, yv)
	})
}

func decodeRaw(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}
