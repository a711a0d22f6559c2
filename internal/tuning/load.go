package tuning

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

//go:embed policy.cue
var defaultPolicyCUE string

// LoadDefault returns the embedded default tables, validated against the
// schema. The defaults reproduce the shipped burn policy: 5 bps base with
// 2.0x turbulence, 1.2x bearish amplification, and 0.5x shallow-liquidity
// dampening.
func LoadDefault() (Tables, error) {
	return load([]byte(defaultPolicyCUE), "policy.cue")
}

// LoadFile loads a complete replacement policy from a CUE file.
//
// The file must define all three tables; it is unified with the schema and
// must be fully concrete. Partial overrides are rejected rather than
// silently merged with the defaults.
func LoadFile(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read policy file: %w", err)
	}
	return load(data, path)
}

// load unifies a policy document with the embedded schema, validates it,
// and decodes the result into Tables.
func load(doc []byte, filename string) (Tables, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Tables{}, fmt.Errorf("compile policy schema: %w", err)
	}

	policy := ctx.CompileBytes(doc, cue.Filename(filename))
	if err := policy.Err(); err != nil {
		return Tables{}, fmt.Errorf("compile policy %s: %w", filename, err)
	}

	unified := schema.Unify(policy)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Tables{}, fmt.Errorf("validate policy %s: %w", filename, err)
	}

	var tables Tables
	if err := unified.Decode(&tables); err != nil {
		return Tables{}, fmt.Errorf("decode policy %s: %w", filename, err)
	}

	tables.Volatility.Name = "volatility"
	tables.Sentiment.Name = "sentiment"
	tables.Liquidity.Name = "liquidity"

	// CUE checks field shapes; tier ordering is a Go-side invariant.
	if err := tables.Validate(); err != nil {
		return Tables{}, fmt.Errorf("invalid policy %s: %w", filename, err)
	}
	return tables, nil
}

// MustDefault returns the embedded default tables and panics if the
// embedded policy is malformed. Embedded defaults failing to load is a
// build defect, not a runtime condition.
func MustDefault() Tables {
	tables, err := LoadDefault()
	if err != nil {
		panic(fmt.Sprintf("tuning: embedded default policy invalid: %v", err))
	}
	return tables
}
