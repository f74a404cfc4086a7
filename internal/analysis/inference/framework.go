package inference

import (
	"fmt"
)

// StudyType describes the research design recorded with a report.
type StudyType string

const (
	StudyCorrelational StudyType = "correlational"
	StudyExplanatory   StudyType = "explanatory"
)

// FrameworkConfig holds the study-wide settings.
type FrameworkConfig struct {
	StudyType         StudyType `json:"study_type"`
	SignificanceLevel float64   `json:"significance_level"`
}

// DefaultFrameworkConfig is a correlational study at α = 0.05.
func DefaultFrameworkConfig() FrameworkConfig {
	return FrameworkConfig{StudyType: StudyCorrelational, SignificanceLevel: DefaultAlpha}
}

// Hypotheses are the three statements a correlational study tests.
type Hypotheses struct {
	Researcher  string `json:"researcher"`
	Null        string `json:"null"`
	Alternative string `json:"alternative"`
}

// Framework is the methodological frame generated for two variables.
type Framework struct {
	Question           string          `json:"question"`
	GeneralObjective   string          `json:"general_objective"`
	SpecificObjectives []string        `json:"specific_objectives"`
	Hypotheses         Hypotheses      `json:"hypotheses"`
	Config             FrameworkConfig `json:"config"`
}

// FrameworkInput names the variables, the optional study context and the
// subscale names of each variable (either may be empty).
type FrameworkInput struct {
	Var1       string
	Var2       string
	Unit       string // unit of analysis, e.g. "students"
	Place      string // where the study takes place
	Dimension1 []string
	Dimension2 []string
}

// context renders " in <unit> of <place>" only when both are given.
func (in FrameworkInput) context() string {
	if in.Unit == "" || in.Place == "" {
		return ""
	}
	return fmt.Sprintf(" in %s of %s", in.Unit, in.Place)
}

// BuildFramework generates the research question, objectives and hypotheses.
func BuildFramework(in FrameworkInput, cfg FrameworkConfig) Framework {
	ctx := in.context()
	relation := fmt.Sprintf("statistically significant relationship between %s and %s%s", in.Var1, in.Var2, ctx)

	return Framework{
		Question:           fmt.Sprintf("What is the relationship between %s and %s%s?", in.Var1, in.Var2, ctx),
		GeneralObjective:   fmt.Sprintf("Determine the relationship between %s and %s%s.", in.Var1, in.Var2, ctx),
		SpecificObjectives: specificObjectives(in),
		Hypotheses: Hypotheses{
			Researcher:  "There is a " + relation + ".",
			Null:        "There is no " + relation + ".",
			Alternative: "There is indeed a " + relation + ".",
		},
		Config: cfg,
	}
}

func specificObjectives(in FrameworkInput) []string {
	var objectives []string
	switch {
	case len(in.Dimension1) > 0 && len(in.Dimension2) > 0:
		for _, d1 := range in.Dimension1 {
			for _, d2 := range in.Dimension2 {
				objectives = append(objectives, fmt.Sprintf(
					"Establish the link between '%s' of %s and '%s' of %s.", d1, in.Var1, d2, in.Var2))
			}
		}
	case len(in.Dimension1) > 0:
		for _, d1 := range in.Dimension1 {
			objectives = append(objectives, fmt.Sprintf(
				"Establish the link between '%s' of %s and %s.", d1, in.Var1, in.Var2))
		}
	case len(in.Dimension2) > 0:
		for _, d2 := range in.Dimension2 {
			objectives = append(objectives, fmt.Sprintf(
				"Establish the link between %s and '%s' of %s.", in.Var1, d2, in.Var2))
		}
	default:
		objectives = append(objectives, fmt.Sprintf("Establish the link between %s and %s.", in.Var1, in.Var2))
	}
	return objectives
}
