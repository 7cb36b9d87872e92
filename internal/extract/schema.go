package extract

import "github.com/CorretorBrazza/docu-flow-automato/constants"

// KindFields lists the canonical field keys a document kind can contribute.
// Both extraction strategies prompt and parse against this schema.
func KindFields(kind constants.DocumentKind) []string {
	switch kind {
	case constants.KindIdentity, constants.KindDriverLicense:
		return []string{
			FieldFullName, FieldIDNumber, FieldTaxID, FieldBirthDate,
			FieldBirthPlace, FieldMaritalStatus, FieldIssuer,
		}
	case constants.KindPayslip:
		return []string{
			FieldFullName, FieldEmployer, FieldJobTitle,
			FieldGrossSalary, FieldAdmissionDate,
		}
	case constants.KindAddressProof:
		return []string{
			FieldStreet, FieldComplement, FieldNeighborhood,
			FieldCity, FieldState, FieldPostalCode,
		}
	case constants.KindCertificate:
		return []string{
			FieldFullName, FieldMaritalStatus, FieldFatherName, FieldMotherName,
		}
	case constants.KindTaxDeclaration:
		return []string{FieldFullName, FieldTaxID}
	default:
		return nil
	}
}
