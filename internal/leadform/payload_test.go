package leadform

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInquiry(t *testing.T) {
	tests := []struct {
		name        string
		schema      Schema
		values      map[string]string
		wantSubject string
		wantBody    string
	}{
		{
			name:   "insurer with all values",
			schema: InsurerSchema,
			values: map[string]string{
				"companyName":   "Bharat Life",
				"contactPerson": "A. Iyer",
				"email":         "a@bharat.in",
				"phone":         "9876543210",
				"insuranceType": "Life",
				"message":       "Let's talk",
			},
			wantSubject: "New Insurer Partnership Inquiry from Bharat Life",
			wantBody: "Company Name: Bharat Life\n" +
				"Contact Person: A. Iyer\n" +
				"Email: a@bharat.in\n" +
				"Phone: 9876543210\n" +
				"Insurance Type: Life\n" +
				"Message: Let's talk\n",
		},
		{
			name:        "blank lead field keeps base subject",
			schema:      SalesSchema,
			values:      map[string]string{"email": "x@y.in", "message": "line one\nline two"},
			wantSubject: "New Sales Partnership Inquiry",
			wantBody: "Full Name: -\n" +
				"Email: x@y.in\n" +
				"Phone: -\n" +
				"City: -\n" +
				"Sales Experience: -\n" +
				"Message:\nline one\nline two\n",
		},
		{
			name:        "line breaks in lead field stay out of the subject line",
			schema:      AgencySchema,
			values:      map[string]string{"agencyName": "Acme\r\nBcc: victim@evil.example\r\nX-Injected: yes"},
			wantSubject: "New Agency Partnership Inquiry from Acme Bcc: victim@evil.example X-Injected: yes",
			wantBody: "Agency Name: Acme\r\nBcc: victim@evil.example\r\nX-Injected: yes\n" +
				"Contact Person: -\n" +
				"Email: -\n" +
				"Phone: -\n" +
				"Number of Agents: -\n" +
				"Message: -\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildInquiry(tt.schema, "team@example.com", tt.values)

			assert.Equal(t, tt.schema.Kind, got.Kind)
			assert.Equal(t, "team@example.com", got.To)
			assert.Equal(t, tt.wantSubject, got.Subject)
			assert.Equal(t, tt.wantBody, got.Body)
			_, err := uuid.Parse(got.Reference)
			require.NoError(t, err)
		})
	}
}

func TestSchemaFor(t *testing.T) {
	for _, kind := range []Kind{KindAgency, KindInsurer, KindSales} {
		s, ok := SchemaFor(kind)
		require.True(t, ok, kind)
		assert.Equal(t, kind, s.Kind)
	}

	_, ok := SchemaFor("broker")
	assert.False(t, ok)
}
