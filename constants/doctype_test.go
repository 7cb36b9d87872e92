package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeKind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected DocumentKind
		ok       bool
	}{
		{"exact_rg", "RG", KindIdentity, true},
		{"exact_cnh", "CNH", KindDriverLicense, true},
		{"habilitacao", "CARTEIRA DE HABILITACAO", KindDriverLicense, true},
		{"holerite", "holerite", KindPayslip, true},
		{"comprovante_pagamento", "comprovante de pagamento", KindPayslip, true},
		{"comprovante_renda", "COMPROVANTE DE RENDA", KindPayslip, true},
		{"payslip_label_roundtrip", KindPayslip.Label(), KindPayslip, true},
		{"endereco", "COMPROVANTE_ENDERECO", KindAddressProof, true},
		{"residencia", "comprovante de residencia", KindAddressProof, true},
		{"bare_comprovante", "COMPROVANTE", KindAddressProof, true},
		{"certidao", "Certidao de nascimento", KindCertificate, true},
		{"imposto", "IMPOSTO_RENDA", KindTaxDeclaration, true},
		{"renda_alone", "declaracao de renda", KindTaxDeclaration, true},
		{"unknown", "random label", KindOther, false},
		{"empty", "", KindOther, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := CanonicalizeKind(tt.input)
			assert.Equal(t, tt.expected, kind)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestIsIdentity(t *testing.T) {
	assert.True(t, KindIdentity.IsIdentity())
	assert.True(t, KindDriverLicense.IsIdentity())
	assert.False(t, KindPayslip.IsIdentity())
	assert.False(t, KindOther.IsIdentity())
}

func TestMissingLabel(t *testing.T) {
	assert.Equal(t, "RG ou Documento de Identidade", KindIdentity.MissingLabel())
	assert.Equal(t, "RG ou Documento de Identidade", KindDriverLicense.MissingLabel())
	assert.Equal(t, "Comprovante de Renda (Holerite)", KindPayslip.MissingLabel())
	assert.Equal(t, "Comprovante de Residência", KindAddressProof.MissingLabel())
}
