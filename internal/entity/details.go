package entity

// SpouseDetails is the second buyer's data, entered by the broker.
type SpouseDetails struct {
	FullName string `json:"nome_completo"`
	TaxID    string `json:"cpf"`
	IDNumber string `json:"rg,omitempty"`
}

// CaseDetails is the supplementary data the broker enters alongside the
// documents. It feeds the cover sheet and the registration form.
type CaseDetails struct {
	Development string         `json:"empreendimento"`
	MediaOrigin string         `json:"midia_origem"`
	Phone       string         `json:"telefone,omitempty"`
	Email       string         `json:"email,omitempty"`
	Notes       string         `json:"observacoes,omitempty"`
	Spouse      *SpouseDetails `json:"conjuge,omitempty"`
}
