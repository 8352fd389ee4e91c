package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPQErrorClassification(t *testing.T) {
	unique := &pq.Error{Code: "23505", Constraint: "produtos_referencia_cor_tamanho_key"}
	fk := fmt.Errorf("delete: %w", &pq.Error{Code: "23503"})
	check := &pq.Error{Code: "23514"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsCheckViolation(check))
	assert.False(t, IsUniqueViolation(errors.New("pq: outro")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestContains(t *testing.T) {
	assert.Equal(t, "%Moleca%", Contains("Moleca"))
	assert.Equal(t, `%50\%%`, Contains("50%"))
	assert.Equal(t, `%SC\_77%`, Contains("SC_77"))
	assert.Equal(t, `%a\\b%`, Contains(`a\b`))
}
