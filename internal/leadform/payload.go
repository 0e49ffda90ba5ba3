package leadform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrDeliveryFailure wraps any error returned by a Deliverer
var ErrDeliveryFailure = errors.New("delivery failure")

// Inquiry is the opaque payload handed to the delivery collaborator
type Inquiry struct {
	Reference string
	Kind      Kind
	To        string
	Subject   string
	Body      string
}

// Deliverer transmits a submitted inquiry. Implementations must be safe to
// call from a goroutine other than the one that created the controller.
type Deliverer interface {
	Deliver(ctx context.Context, inquiry Inquiry) error
}

// DelivererFunc adapts a function to the Deliverer interface
type DelivererFunc func(ctx context.Context, inquiry Inquiry) error

func (f DelivererFunc) Deliver(ctx context.Context, inquiry Inquiry) error {
	return f(ctx, inquiry)
}

// headerSafe flattens a value that ends up in a mail header onto one line
func headerSafe(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// BuildInquiry assembles the human-readable payload from field values in
// schema order.
func BuildInquiry(schema Schema, to string, values map[string]string) Inquiry {
	var b strings.Builder
	for _, f := range schema.Fields {
		value := strings.TrimSpace(values[f.Name])
		if value == "" {
			value = "-"
		}
		if f.Type == FieldTextarea && strings.Contains(value, "\n") {
			fmt.Fprintf(&b, "%s:\n%s\n", f.Label, value)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", f.Label, value)
	}

	subject := schema.Subject
	if len(schema.Fields) > 0 {
		if lead := headerSafe(values[schema.Fields[0].Name]); lead != "" {
			subject = fmt.Sprintf("%s from %s", schema.Subject, lead)
		}
	}

	return Inquiry{
		Reference: uuid.New().String(),
		Kind:      schema.Kind,
		To:        to,
		Subject:   subject,
		Body:      b.String(),
	}
}
