package wizard

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

// Kind selects the flow: a private person walks the multi-step wizard, an
// organization fills a single combined step.
type Kind string

const (
	KindIndividual   Kind = "individual"
	KindOrganization Kind = "organization"
)

// Consent and attachment field names shared by both flows.
const (
	FieldAgreement = "agreement"
	FieldTerms     = "terms"
	FieldPhoto     = "photo"
	FieldFinePhoto = "finePhoto"
)

// Step is one wizard screen with its required fields.
type Step struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields"`
}

type stepTable struct {
	Flows map[Kind][]Step `yaml:"flows"`
}

//go:embed steps.yaml
var stepsYAML []byte

var flows map[Kind][]Step

func init() {
	var table stepTable
	if err := yaml.Unmarshal(stepsYAML, &table); err != nil {
		panic(fmt.Sprintf("wizard: bad step table: %v", err))
	}
	flows = table.Flows
}

// Steps returns the ordered step list for a flow.
func Steps(kind Kind) []Step {
	return flows[kind]
}

// StepCount returns the number of steps in a flow (7 for individual,
// 1 for organization).
func StepCount(kind Kind) int {
	return len(flows[kind])
}

// IsConsentField reports whether the field is one of the two consent flags.
func IsConsentField(name string) bool {
	return name == FieldAgreement || name == FieldTerms
}

// IsAttachmentField reports whether the field carries a file.
func IsAttachmentField(name string) bool {
	return name == FieldPhoto || name == FieldFinePhoto
}
