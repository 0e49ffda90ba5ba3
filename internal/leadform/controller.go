package leadform

import (
	"context"
	"fmt"
	"sync"
)

// Status is the submission lifecycle of a form
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// FormState is a point-in-time copy of a controller's state
type FormState struct {
	Fields       map[string]string
	Status       Status
	ErrorMessage string
}

// Value returns the current value of a field
func (s FormState) Value(name string) string {
	return s.Fields[name]
}

// Controller owns the field values and submission status of one form.
//
// Idle --Submit--> Submitting --ok--> Success --Reset--> Idle
// Submitting --fail--> Error --Submit--> Submitting
type Controller struct {
	mu        sync.Mutex
	schema    Schema
	to        string
	deliverer Deliverer

	fields       map[string]string
	status       Status
	errorMessage string
	lastErr      error
	done         chan struct{}
}

// New creates a controller in the Idle state with every field blank
func New(schema Schema, to string, deliverer Deliverer) *Controller {
	done := make(chan struct{})
	close(done)

	c := &Controller{
		schema:    schema,
		to:        to,
		deliverer: deliverer,
		status:    StatusIdle,
		done:      done,
	}
	c.fields = c.blankFields()
	return c
}

func (c *Controller) blankFields() map[string]string {
	fields := make(map[string]string, len(c.schema.Fields))
	for _, f := range c.schema.Fields {
		fields[f.Name] = ""
	}
	return fields
}

// Schema returns the form definition
func (c *Controller) Schema() Schema {
	return c.schema
}

// UpdateField replaces the value of an existing field. It never changes the
// status. Edits made while a submission is in flight are dropped.
func (c *Controller) UpdateField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.fields[name]; !ok {
		panic(fmt.Sprintf("leadform: unknown field %q for %s form", name, c.schema.Kind))
	}
	if c.status == StatusSubmitting {
		return
	}
	c.fields[name] = value
}

// Submit starts a delivery when the form is Idle or Error and reports whether
// it did. The delivery runs in the background and is not cancelled when ctx
// is; values carried by ctx are kept.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusIdle && c.status != StatusError {
		return false
	}

	c.status = StatusSubmitting
	c.errorMessage = ""
	c.lastErr = nil
	c.done = make(chan struct{})

	values := make(map[string]string, len(c.fields))
	for k, v := range c.fields {
		values[k] = v
	}
	inquiry := BuildInquiry(c.schema, c.to, values)

	go c.deliver(context.WithoutCancel(ctx), inquiry, c.done)
	return true
}

// safeDeliver turns a panicking deliverer into an ordinary failure
func (c *Controller) safeDeliver(ctx context.Context, inquiry Inquiry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("deliverer panicked: %v", r)
		}
	}()
	return c.deliverer.Deliver(ctx, inquiry)
}

func (c *Controller) deliver(ctx context.Context, inquiry Inquiry, done chan struct{}) {
	err := c.safeDeliver(ctx, inquiry)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(done)

	if err != nil {
		c.status = StatusError
		c.errorMessage = c.schema.failureMessage()
		c.lastErr = fmt.Errorf("%w: %s inquiry %s: %v", ErrDeliveryFailure, inquiry.Kind, inquiry.Reference, err)
		return
	}
	c.status = StatusSuccess
}

// Done returns a channel closed once the current submission resolves. When
// nothing is in flight the channel is already closed.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Wait blocks until the in-flight submission resolves or ctx ends
func (c *Controller) Wait(ctx context.Context) (Status, error) {
	select {
	case <-c.Done():
		return c.Status(), nil
	case <-ctx.Done():
		return c.Status(), ctx.Err()
	}
}

// Reset blanks every field and returns to Idle. It is refused while a
// submission is in flight.
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusSubmitting {
		return false
	}
	c.fields = c.blankFields()
	c.status = StatusIdle
	c.errorMessage = ""
	c.lastErr = nil
	return true
}

// Status returns the current lifecycle status
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns the wrapped delivery error behind the last Error transition
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// State returns a copy of the current state
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := make(map[string]string, len(c.fields))
	for k, v := range c.fields {
		fields[k] = v
	}
	return FormState{
		Fields:       fields,
		Status:       c.status,
		ErrorMessage: c.errorMessage,
	}
}
