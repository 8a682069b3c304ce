package comparer

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"badajozrespira/src/domain"
)

func IgnoreFieldsFor[T any](fields ...string) cmp.Option {
	var t T
	return cmpopts.IgnoreFields(t, fields...)
}

// DomainEvent compara envelopes ignorando o EventID gerado, com tolerância
// no OccurredAt e comparando Data pelo conteúdo JSON.
func DomainEvent(tolerance time.Duration) cmp.Option {
	return cmp.Options{
		IgnoreFieldsFor[domain.DomainEvent]("EventID"),
		TimeWithin(tolerance),
		JSONRawMessage(),
	}
}
