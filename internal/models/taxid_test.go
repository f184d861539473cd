package models_test

import (
	"testing"

	"comercio/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTaxID(t *testing.T) {
	assert.Equal(t, "12345678000199", models.NormalizeTaxID("12.345.678/0001-99"))
	assert.Equal(t, "12345678000199", models.NormalizeTaxID(" 12345678000199 "))
	assert.Equal(t, "", models.NormalizeTaxID("abc"))
}

func TestFormatTaxID(t *testing.T) {
	assert.Equal(t, "12.345.678/0001-99", models.FormatTaxID("12345678000199"))
	assert.Equal(t, "12.345.678/0001-99", models.FormatTaxID("12.345.678/0001-99"))
	assert.Equal(t, "123", models.FormatTaxID("1-2-3"))
	assert.Equal(t, "123456780001990", models.FormatTaxID("123456780001990"))
}
