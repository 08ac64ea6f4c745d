package schema

import (
	"strconv"
	"strings"
)

// ExportDocument converts s back into a Document that Load accepts. Custom
// constraints carry Go predicates and cannot be written down; they are left
// out and reported as "field.rule" entries.
func ExportDocument(s *Schema) (Document, []string) {
	var (
		doc     Document
		skipped []string
	)
	if s == nil {
		return doc, nil
	}
	for _, spec := range s.Fields() {
		fd := FieldDocument{
			Name:        spec.Name,
			Kind:        spec.Kind.Name(),
			Label:       spec.Label,
			Placeholder: spec.Placeholder,
			Description: spec.Description,
			Widget:      spec.Widget,
			Options:     spec.Options(),
		}
		if !isZeroDefault(spec.Kind, spec.Default) {
			fd.Default = spec.Default
		}
		for _, c := range spec.Constraints {
			cd, ok := exportConstraint(c)
			if !ok {
				skipped = append(skipped, spec.Name+"."+c.Rule)
				continue
			}
			fd.Constraints = append(fd.Constraints, cd)
		}
		doc.Fields = append(doc.Fields, fd)
	}
	return doc, skipped
}

func exportConstraint(c Constraint) (ConstraintDocument, bool) {
	cd := ConstraintDocument{Rule: c.Rule, Message: c.Message, SkipEmpty: c.SkipEmpty}
	switch c.Rule {
	case RuleRequired, RuleEmail, RuleURL, RuleAccepted, RuleInteger:
	case RuleMinLength, RuleMaxLength:
		n, err := strconv.Atoi(c.Param("value"))
		if err != nil {
			return ConstraintDocument{}, false
		}
		cd.Value = n
	case RuleMin, RuleMax, RuleExclusiveMin, RuleExclusiveMax:
		n, err := strconv.ParseFloat(c.Param("value"), 64)
		if err != nil {
			return ConstraintDocument{}, false
		}
		cd.Value = n
	case RulePattern:
		cd.Value = c.Param("pattern")
	case RuleOneOf:
		cd.Value = strings.Split(c.Param("values"), ",")
	default:
		return ConstraintDocument{}, false
	}
	return cd, true
}

func isZeroDefault(kind Kind, value any) bool {
	switch kind.(type) {
	case NumberKind:
		return value == nil
	case BooleanKind:
		b, _ := value.(bool)
		return !b
	default:
		s, _ := value.(string)
		return s == ""
	}
}
