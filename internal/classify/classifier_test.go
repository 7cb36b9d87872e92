package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
)

func TestByFilename(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		expected constants.DocumentKind
	}{
		{"rg_token", "RG_joao.jpg", constants.KindIdentity},
		{"identidade", "documento-identidade.pdf", constants.KindIdentity},
		{"cpf_card", "cpf.png", constants.KindIdentity},
		{"cnh", "CNH_maria.pdf", constants.KindDriverLicense},
		{"habilitacao", "carteira_habilitacao.jpg", constants.KindDriverLicense},
		{"holerite", "holerite_maio.pdf", constants.KindPayslip},
		{"contracheque", "contracheque-05-2026.pdf", constants.KindPayslip},
		{"comprovante_pagamento", "comprovante de pagamento.pdf", constants.KindPayslip},
		{"recibo", "recibo_maio_2026.pdf", constants.KindPayslip},
		{"comprovante_renda", "comprovante_de_renda.pdf", constants.KindPayslip},
		{"endereco", "comprovante_endereco.pdf", constants.KindAddressProof},
		{"conta_luz", "conta de luz abril.pdf", constants.KindAddressProof},
		{"residencia_no_id_false_positive", "comprovante-residencia.jpg", constants.KindAddressProof},
		{"certidao", "certidao_casamento.pdf", constants.KindCertificate},
		{"imposto", "declaracao_imposto_renda.pdf", constants.KindTaxDeclaration},
		{"irpf_token", "irpf 2026.pdf", constants.KindTaxDeclaration},
		{"recibo_dirpf_not_payslip", "recibo_entrega_dirpf.pdf", constants.KindTaxDeclaration},
		{"unknown", "foto_ferias.png", constants.KindOther},
		{"energia_not_identity", "fatura-energia.pdf", constants.KindAddressProof},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ByFilename(tt.file))
		})
	}
}

// A driver's-license keyword must always win, no matter what else the file
// name carries.
func TestByFilenameLicensePriority(t *testing.T) {
	for _, file := range []string{
		"cnh.pdf",
		"rg_e_cnh_frente.jpg",
		"cnh_comprovante.pdf",
		"habilitacao-identidade.png",
	} {
		assert.Equal(t, constants.KindDriverLicense, ByFilename(file), "file %q", file)
	}
}

type stubClassifier struct {
	kind constants.DocumentKind
	err  error
}

func (s stubClassifier) Classify(context.Context, entity.UploadedDocument) (constants.DocumentKind, error) {
	return s.kind, s.err
}

func TestChainPrefersBackend(t *testing.T) {
	chain := NewChain(stubClassifier{kind: constants.KindPayslip}, nil)
	kind, err := chain.Classify(context.Background(), entity.UploadedDocument{FileName: "certidao.pdf"})
	require.NoError(t, err)
	assert.Equal(t, constants.KindPayslip, kind)
}

func TestChainFallsBackOnError(t *testing.T) {
	chain := NewChain(stubClassifier{err: errors.New("quota")}, nil)
	kind, err := chain.Classify(context.Background(), entity.UploadedDocument{FileName: "certidao.pdf"})
	require.NoError(t, err)
	assert.Equal(t, constants.KindCertificate, kind)
}

func TestChainFallsBackOnOther(t *testing.T) {
	chain := NewChain(stubClassifier{kind: constants.KindOther}, nil)
	kind, err := chain.Classify(context.Background(), entity.UploadedDocument{FileName: "holerite.pdf"})
	require.NoError(t, err)
	assert.Equal(t, constants.KindPayslip, kind)
}
