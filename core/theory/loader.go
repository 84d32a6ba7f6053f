package theory

import (
	"fmt"
	"os"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/verity-lang/verity/core/grammar"
)

// Theory and proof documents are YAML. The shape is validated against a
// schema before decoding so malformed files fail with a precise path instead
// of a zero-valued model.

const theorySchemaJSON = `{
	"type": "object",
	"required": ["name", "rules", "statements"],
	"properties": {
		"name": {"type": "string"},
		"kinds": {"type": "array", "items": {"type": "string"}},
		"typecodes": {"type": "object", "additionalProperties": {"type": "string"}},
		"workingvars": {"type": "object", "additionalProperties": {"type": "string"}},
		"variables": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["token", "kind", "hyp"],
				"properties": {
					"token": {"type": "string"},
					"kind": {"type": "string"},
					"hyp": {"type": "string"}
				}
			}
		},
		"rules": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["label", "kind", "syntax"],
				"properties": {
					"label": {"type": "string"},
					"kind": {"type": "string"},
					"syntax": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"statements": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["label", "formula"],
				"properties": {
					"label": {"type": "string"},
					"formula": {"type": "string"},
					"line": {"type": "integer"}
				}
			}
		}
	}
}`

const proofSchemaJSON = `{
	"type": "object",
	"required": ["theorem", "steps"],
	"properties": {
		"theorem": {"type": "string"},
		"steps": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["ref", "formula"],
				"properties": {
					"ref": {"type": "string"},
					"uses": {"type": "string"},
					"formula": {"type": "string"},
					"line": {"type": "integer"}
				}
			}
		}
	}
}`

var (
	theorySchema = jsonschema.MustCompileString("theory.schema.json", theorySchemaJSON)
	proofSchema  = jsonschema.MustCompileString("proof.schema.json", proofSchemaJSON)
)

type theoryDoc struct {
	Name        string                   `yaml:"name"`
	Kinds       []string                 `yaml:"kinds"`
	Typecodes   map[string]string        `yaml:"typecodes"`
	WorkingVars map[string]string        `yaml:"workingvars"`
	Variables   []grammar.VarDescriptor  `yaml:"variables"`
	Rules       []grammar.RuleDescriptor `yaml:"rules"`
	Statements  []struct {
		Label   string `yaml:"label"`
		Formula string `yaml:"formula"`
		Line    int    `yaml:"line"`
	} `yaml:"statements"`
}

type proofDoc struct {
	Theorem string `yaml:"theorem"`
	Steps   []struct {
		Ref     string `yaml:"ref"`
		Uses    string `yaml:"uses"`
		Formula string `yaml:"formula"`
		Line    int    `yaml:"line"`
	} `yaml:"steps"`
}

// Load reads and validates a theory document.
func Load(path string) (*Theory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theory file: %w", err)
	}
	if err := validate(theorySchema, data); err != nil {
		return nil, fmt.Errorf("theory file %s: %w", path, err)
	}

	var doc theoryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding theory file %s: %w", path, err)
	}

	t := New(doc.Name)
	t.Rules = doc.Rules
	t.Vars = doc.Variables
	for _, k := range doc.Kinds {
		t.Typecodes[k] = grammar.Kind(k)
	}
	for tc, k := range doc.Typecodes {
		t.Typecodes[tc] = grammar.Kind(k)
	}
	for prefix, k := range doc.WorkingVars {
		t.WorkingVarPrefixes[prefix] = grammar.Kind(k)
	}

	for i, st := range doc.Statements {
		line := st.Line
		if line == 0 {
			line = i + 1
		}
		stmt := &Statement{
			Label:    st.Label,
			Formula:  st.Formula,
			Line:     line,
			Parsable: parsable(t, st.Formula),
		}
		if err := t.Add(stmt); err != nil {
			return nil, fmt.Errorf("theory file %s: %w", path, err)
		}
	}
	return t, nil
}

// LoadProof reads and validates a proof document against its theory. Step
// formulas are left unparsed; a parsing session attaches trees.
func LoadProof(path string, th *Theory) (*Proof, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading proof file: %w", err)
	}
	if err := validate(proofSchema, data); err != nil {
		return nil, fmt.Errorf("proof file %s: %w", path, err)
	}

	var doc proofDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding proof file %s: %w", path, err)
	}

	p := &Proof{
		Theorem:     doc.Theorem,
		Outermost:   th.Scope(),
		WorkingVars: grammar.NewWorkingVarContext(th.WorkingVarPrefixes),
	}
	for i, st := range doc.Steps {
		if st.Uses != "" {
			if _, ok := th.Statement(st.Uses); !ok {
				if hint, found := th.SuggestLabel(st.Uses); found {
					return nil, fmt.Errorf("proof file %s: step %q uses unknown statement %q (did you mean %q?)", path, st.Ref, st.Uses, hint)
				}
				return nil, fmt.Errorf("proof file %s: step %q uses unknown statement %q", path, st.Ref, st.Uses)
			}
		}
		line := st.Line
		if line == 0 {
			line = i + 1
		}
		p.Steps = append(p.Steps, &Step{Ref: st.Ref, Uses: st.Uses, Formula: st.Formula, Line: line})
	}
	return p, nil
}

// SuggestLabel returns the closest known statement label for a misspelled
// reference, if one is close enough to be a plausible typo.
func (t *Theory) SuggestLabel(ref string) (string, bool) {
	best, bestDist := "", -1
	for _, label := range t.Labels() {
		d := fuzzy.LevenshteinDistance(ref, label)
		if bestDist < 0 || d < bestDist {
			best, bestDist = label, d
		}
	}
	if bestDist < 0 || bestDist > len(ref)/2+1 {
		return "", false
	}
	return best, true
}

// parsable selects statements whose formula can enter the batch parse: the
// leading token must resolve to a kind through the typecode table.
func parsable(t *Theory, formula string) bool {
	for i := 0; i < len(formula); i++ {
		if formula[i] == ' ' {
			continue
		}
		end := i
		for end < len(formula) && formula[end] != ' ' {
			end++
		}
		_, ok := t.Typecodes[formula[i:end]]
		return ok
	}
	return false
}

// validate checks a YAML document against a compiled schema.
func validate(schema *jsonschema.Schema, data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
