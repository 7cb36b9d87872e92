package gemini

import "github.com/CorretorBrazza/docu-flow-automato/constants"

// Prompts are in Portuguese because the documents are; the model answers
// more reliably when prompt and content share a language.

const extractSystemPrompt = `Você é um extrator de dados de documentos brasileiros de crédito imobiliário.
Responda sempre e somente com JSON válido. Se algum campo não estiver visível
ou legível, use string vazia "".`

const classifySystemPrompt = `Você classifica documentos brasileiros de cadastro de crédito.
Responda apenas com uma das palavras: RG, CNH, HOLERITE, COMPROVANTE_ENDERECO,
CERTIDAO, IMPOSTO_RENDA, OUTROS. Sem texto adicional.`

const qualitySystemPrompt = `Você avalia a legibilidade de documentos digitalizados.
Responda sempre e somente com JSON válido.`

const identityPrompt = `Analise este documento de identidade (RG ou CNH) e extraia as seguintes informações em formato JSON:

{
  "nomeCompleto": "nome completo da pessoa",
  "rg": "número do RG (formato: XX.XXX.XXX-X)",
  "cpf": "número do CPF se presente (formato: XXX.XXX.XXX-XX)",
  "dataNascimento": "data de nascimento (formato: DD/MM/AAAA)",
  "naturalidade": "cidade/estado de nascimento",
  "estadoCivil": "estado civil (SOLTEIRO, CASADO, DIVORCIADO, VIÚVO)",
  "orgaoEmissor": "órgão emissor (ex: SSP-SP, IFP-RJ)"
}

Retorne apenas o JSON, sem texto adicional.`

const payslipPrompt = `Analise este holerite/comprovante de pagamento e extraia as seguintes informações em formato JSON:

{
  "nomeCompleto": "nome do funcionário",
  "empresa": "nome da empresa/empregador",
  "cargo": "cargo/função do funcionário",
  "salarioBruto": "salário bruto (formato: R$ X.XXX,XX)",
  "dataAdmissao": "data de admissão (formato: DD/MM/AAAA)"
}

Retorne apenas o JSON, sem texto adicional.`

const addressPrompt = `Analise este comprovante de residência e extraia as seguintes informações em formato JSON:

{
  "logradouro": "endereço (rua e número)",
  "complemento": "complemento se presente (apto, bloco)",
  "bairro": "bairro",
  "cidade": "cidade",
  "estado": "estado (sigla de 2 letras)",
  "cep": "CEP (formato: XXXXX-XXX)"
}

Retorne apenas o JSON, sem texto adicional.`

const certificatePrompt = `Analise esta certidão e extraia as seguintes informações em formato JSON:

{
  "nomeCompleto": "nome completo do titular",
  "estadoCivil": "estado civil indicado pela certidão (SOLTEIRO, CASADO, DIVORCIADO, VIÚVO)",
  "nomePai": "nome completo do pai",
  "nomeMae": "nome completo da mãe"
}

Retorne apenas o JSON, sem texto adicional.`

const taxDeclarationPrompt = `Analise esta declaração de imposto de renda e extraia as seguintes informações em formato JSON:

{
  "nomeCompleto": "nome completo do contribuinte",
  "cpf": "número do CPF (formato: XXX.XXX.XXX-XX)"
}

Retorne apenas o JSON, sem texto adicional.`

const classifyPrompt = `Classifique este documento. Responda apenas com uma das palavras:
RG, CNH, HOLERITE, COMPROVANTE_ENDERECO, CERTIDAO, IMPOSTO_RENDA, OUTROS.`

const qualityPrompt = `Avalie a qualidade desta digitalização e responda em formato JSON:

{
  "legivel": true ou false,
  "completo": true ou false (documento inteiro visível, sem cortes),
  "qualidade": "BOA", "REGULAR" ou "RUIM",
  "problemas": ["lista de problemas encontrados, vazia se nenhum"]
}

Retorne apenas o JSON, sem texto adicional.`

func promptFor(kind constants.DocumentKind) string {
	switch kind {
	case constants.KindIdentity, constants.KindDriverLicense:
		return identityPrompt
	case constants.KindPayslip:
		return payslipPrompt
	case constants.KindAddressProof:
		return addressPrompt
	case constants.KindCertificate:
		return certificatePrompt
	case constants.KindTaxDeclaration:
		return taxDeclarationPrompt
	default:
		return ""
	}
}
