package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	require.NoError(t, err)
	return r
}

// 2 literal fields plus 4 blocks x 31 questions = 126 monitored fields.
func TestRegistrySize(t *testing.T) {
	r := newTestRegistry(t)
	assert.Len(t, r.Fields(), 126)
}

func TestRegistryCanonical(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		raw  string
		want string
	}{
		{"Última atualização:", "Última atualização:"},
		// Both workbook generations resolve to the same canonical field.
		{"Imagem Registrada:", "Imagem Registrada:"},
		{"Imagem do Equipamento Registrada em:", "Imagem Registrada:"},
		// The descriptive suffix is discarded in the canonical label.
		{"(PC) Pergunta 01 [Monitoramento]", "(PC) Pergunta 01"},
		{"(DQ) Pergunta 31 [Monitoramento]", "(DQ) Pergunta 31"},
	}
	for _, tt := range tests {
		got, ok := r.Canonical(tt.raw)
		require.True(t, ok, "expected %q to be monitored", tt.raw)
		assert.Equal(t, tt.want, got)
	}

	_, ok := r.Canonical("TAG")
	assert.False(t, ok, "metadata columns are not monitored")
	_, ok = r.Canonical("(PC) Pergunta 32 [Monitoramento]")
	assert.False(t, ok, "sequence numbers stop at 31")
	_, ok = r.Canonical("(XX) Pergunta 01 [Monitoramento]")
	assert.False(t, ok, "unknown block code")
}

func TestRegistryPresent(t *testing.T) {
	r := newTestRegistry(t)

	headers := []string{
		"TAG",
		"Área",
		"(CE) Pergunta 05 [Monitoramento]",
		"Imagem do Equipamento Registrada em:", // old spelling
		"Última atualização:",
	}

	present := r.Present(headers)
	require.Len(t, present, 3)

	// Registration order: literals first, then families.
	assert.Equal(t, "Última atualização:", present[0].Field)
	assert.Equal(t, 4, present[0].Column)
	assert.Equal(t, "Imagem Registrada:", present[1].Field)
	assert.Equal(t, 3, present[1].Column)
	assert.Equal(t, "(CE) Pergunta 05", present[2].Field)
	assert.Equal(t, 2, present[2].Column)
}

func TestRegistryPresentNone(t *testing.T) {
	r := newTestRegistry(t)
	assert.Empty(t, r.Present([]string{"TAG", "Descrição"}))
	assert.Empty(t, r.Present(nil))
}
