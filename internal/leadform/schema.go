package leadform

// Kind identifies one of the partnership forms
type Kind string

const (
	KindAgency  Kind = "agency"
	KindInsurer Kind = "insurer"
	KindSales   Kind = "sales"
)

// FieldType mirrors the HTML input type used to render a field
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// DefaultFailureMessage is shown when the delivery collaborator fails
const DefaultFailureMessage = "Failed to send inquiry. Please try again later or contact us directly."

// Field describes a single form input
type Field struct {
	Name        string
	Label       string
	Type        FieldType
	Required    bool // enforced by the browser only
	Placeholder string
	Options     []string
}

// Schema is the declared field set of one lead-capture form
type Schema struct {
	Kind           Kind
	Title          string
	Intro          string
	Subject        string
	Fields         []Field
	FailureMessage string
}

// Field returns the field definition for name
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) failureMessage() string {
	if s.FailureMessage == "" {
		return DefaultFailureMessage
	}
	return s.FailureMessage
}

var AgencySchema = Schema{
	Kind:    KindAgency,
	Title:   "Agency Partnership",
	Intro:   "Bring your whole agency onto one CRM. Tell us about your team and we will set up a walkthrough.",
	Subject: "New Agency Partnership Inquiry",
	Fields: []Field{
		{Name: "agencyName", Label: "Agency Name", Type: FieldText, Required: true},
		{Name: "contactPerson", Label: "Contact Person", Type: FieldText, Required: true},
		{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
		{Name: "phone", Label: "Phone", Type: FieldTel, Placeholder: "+91"},
		{Name: "numberOfAgents", Label: "Number of Agents", Type: FieldNumber},
		{Name: "message", Label: "Message", Type: FieldTextarea},
	},
}

var InsurerSchema = Schema{
	Kind:    KindInsurer,
	Title:   "Insurer Partnership",
	Intro:   "List your products in front of thousands of agents across India.",
	Subject: "New Insurer Partnership Inquiry",
	Fields: []Field{
		{Name: "companyName", Label: "Company Name", Type: FieldText, Required: true},
		{Name: "contactPerson", Label: "Contact Person", Type: FieldText, Required: true},
		{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
		{Name: "phone", Label: "Phone", Type: FieldTel, Placeholder: "+91"},
		{
			Name:    "insuranceType",
			Label:   "Insurance Type",
			Type:    FieldSelect,
			Options: []string{"Life", "Health", "Motor", "General", "Composite"},
		},
		{Name: "message", Label: "Message", Type: FieldTextarea},
	},
}

var SalesSchema = Schema{
	Kind:    KindSales,
	Title:   "Sales Partnership",
	Intro:   "Earn recurring commission by introducing agents to the platform.",
	Subject: "New Sales Partnership Inquiry",
	Fields: []Field{
		{Name: "fullName", Label: "Full Name", Type: FieldText, Required: true},
		{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
		{Name: "phone", Label: "Phone", Type: FieldTel, Required: true, Placeholder: "+91"},
		{Name: "city", Label: "City", Type: FieldText},
		{
			Name:    "experience",
			Label:   "Sales Experience",
			Type:    FieldSelect,
			Options: []string{"Less than 1 year", "1-3 years", "3-5 years", "5+ years"},
		},
		{Name: "message", Label: "Message", Type: FieldTextarea},
	},
	FailureMessage: "Failed to send application. Please try again later or contact us directly.",
}

// Schemas lists the built-in forms in display order
func Schemas() []Schema {
	return []Schema{AgencySchema, InsurerSchema, SalesSchema}
}

// SchemaFor looks up a built-in schema by kind
func SchemaFor(kind Kind) (Schema, bool) {
	for _, s := range Schemas() {
		if s.Kind == kind {
			return s, true
		}
	}
	return Schema{}, false
}
