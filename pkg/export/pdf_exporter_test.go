package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDocument(t *testing.T) {
	doc := Document{
		Issuer:   "ESTIM",
		Title:    "Relevé de notes",
		Subtitle: "Semestre 1 2024-2025",
		Fields:   []Field{{Label: "Matricule", Value: "4821"}},
		Sections: []Section{
			{
				Heading: "Matières validées",
				Data: Dataset{
					Headers: []string{"Matière", "Moyenne"},
					Rows:    []map[string]string{{"Matière": "Algorithmique", "Moyenne": "14.80"}},
				},
			},
			{Heading: "Matières non validées", Data: Dataset{Headers: []string{"Matière"}}, Empty: "Aucune"},
		},
		Summary: []Field{{Label: "Moyenne générale", Value: "14.80"}},
		Footer:  []string{"Fait le 01/07/2025"},
	}

	out, err := NewPDFExporter().RenderDocument(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderDocumentRequiresTitle(t *testing.T) {
	_, err := NewPDFExporter().RenderDocument(Document{})
	assert.Error(t, err)
}
