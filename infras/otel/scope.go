package otel

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"tzbot/shared/failure"
)

const (
	eventRejected   = "rejected"
	attrFailureCode = "failure.code"
	attrFailureMsg  = "failure.message"
)

type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type scopeImpl struct {
	span oteltrace.Span
}

func (s *scopeImpl) End() {
	s.span.End()
}

// TraceError marks the span failed. A Failure with a 4xx code is a rejected
// request, not a fault, so it is recorded as an event and the status is left unset.
func (s *scopeImpl) TraceError(err error) {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		s.span.SetAttributes(attribute.Int(attrFailureCode, fail.Code))

		if fail.Code < http.StatusInternalServerError {
			s.span.AddEvent(eventRejected, oteltrace.WithAttributes(
				attribute.Int(attrFailureCode, fail.Code),
				attribute.String(attrFailureMsg, fail.Message),
			))

			return
		}
	}

	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) AddEvent(name string) {
	s.span.AddEvent(name)
}

func (s *scopeImpl) SetAttribute(key string, value any) {
	s.span.SetAttributes(attributeOf(key, value))
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, attributeOf(key, value))
	}

	s.span.SetAttributes(kvs...)
}

// attributeOf maps value to the closest attribute type. Snowflake ids are
// uint64 and exceed int64, so they are kept as strings.
func attributeOf(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case uint64:
		return attribute.String(key, strconv.FormatUint(val, 10))
	case float64:
		return attribute.Float64(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case fmt.Stringer:
		return attribute.String(key, val.String())
	case error:
		return attribute.String(key, val.Error())
	default:
		return attribute.String(key, fmt.Sprintf("%v", val))
	}
}

func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{
		span: span,
	}
}
