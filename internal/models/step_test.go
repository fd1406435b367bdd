package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepLabel(t *testing.T) {
	step := StepRecord{Number: "07", Name: "Aprovar Pagamento"}
	assert.Equal(t, "ETAPA 07 - Aprovar Pagamento", step.Label())
	assert.Equal(t, step.Label(), StepLabel("07", "Aprovar Pagamento"))
}

func TestGenerationResultOmitsEmptyReports(t *testing.T) {
	data, err := json.Marshal(GenerationResult{Success: true, TotalSteps: 0})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "relatorios")
	for _, key := range []string{"sucesso", "mensagem", "arquivo", "nome_processo", "total_etapas", "slides_criados", "etapas_processadas"} {
		assert.Contains(t, fields, key)
	}
}
