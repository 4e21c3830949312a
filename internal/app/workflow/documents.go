package workflow

import (
	"strings"

	"github.com/tpcell/portal/internal/app/models"
)

// DocumentRequirement is one item of a degree checklist
type DocumentRequirement struct {
	DocumentType string
	Label        string
	Required     bool
}

var baseRequirements = []DocumentRequirement{
	{models.DocumentResume, "Resume", true},
	{models.DocumentPhoto, "Passport size photograph", true},
	{models.DocumentTenthMarksheet, "Class X marksheet", true},
	{models.DocumentTwelfthMarksheet, "Class XII or diploma marksheet", true},
	{models.DocumentSemesterMarksheets, "Semester marksheets", true},
	{models.DocumentIDProof, "Government ID proof", false},
}

// Postgraduate degrees also need the undergraduate marksheet.
var postgraduateDegrees = map[string]bool{
	"MTECH": true,
	"ME":    true,
	"MBA":   true,
	"MCA":   true,
	"MSC":   true,
}

// DocumentRequirements returns the checklist for a degree. Lateral entry
// diploma holders may upload a diploma marksheet in place of Class XII.
func DocumentRequirements(degree string) []DocumentRequirement {
	reqs := make([]DocumentRequirement, len(baseRequirements), len(baseRequirements)+2)
	copy(reqs, baseRequirements)

	if postgraduateDegrees[strings.ToUpper(degree)] {
		reqs = append(reqs, DocumentRequirement{models.DocumentGraduationMarksheet, "Graduation marksheet", true})
	}
	reqs = append(reqs, DocumentRequirement{models.DocumentDiplomaMarksheet, "Diploma marksheet", false})
	return reqs
}

// IsDocumentType reports whether t is an accepted document type
func IsDocumentType(t string) bool {
	for _, known := range models.DocumentTypes {
		if known == t {
			return true
		}
	}
	return false
}
