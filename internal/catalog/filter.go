package catalog

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Filter is a compiled CEL predicate over records, e.g.
//
//	kind == "int" && byte_size >= 4
//	state == "unresolved" && name.startsWith("core.")
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter compiles expr. The expression must evaluate to a bool.
func NewFilter(expr string) (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("offset", cel.IntType),
		cel.Variable("name", cel.StringType),
		cel.Variable("byte_size", cel.IntType),
		cel.Variable("bit_size", cel.IntType),
		cel.Variable("kind", cel.StringType),
		cel.Variable("format", cel.StringType),
		cel.Variable("encoding", cel.StringType),
		cel.Variable("basic_type", cel.StringType),
		cel.Variable("state", cel.StringType),
		cel.Variable("encoding_offset", cel.IntType),
		cel.Variable("encoding_kind", cel.StringType),
		cel.Variable("decl_file", cel.StringType),
		cel.Variable("decl_line", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, iss.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build filter %q: %w", expr, err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Match evaluates the filter against rec.
func (f *Filter) Match(rec Record) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		"offset":          rec.ID,
		"name":            rec.Name,
		"byte_size":       rec.ByteSize,
		"bit_size":        rec.BitSize,
		"kind":            rec.Kind,
		"format":          rec.Format,
		"encoding":        rec.Encoding,
		"basic_type":      rec.BasicType,
		"state":           rec.State,
		"encoding_offset": rec.EncodingID,
		"encoding_kind":   rec.EncodingKind,
		"decl_file":       rec.DeclFile,
		"decl_line":       rec.DeclLine,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter %q: %w", f.expr, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T", f.expr, out.Value())
	}
	return matched, nil
}

// Apply returns the records matching f. A nil filter matches everything.
func (f *Filter) Apply(records []Record) ([]Record, error) {
	if f == nil {
		return records, nil
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
