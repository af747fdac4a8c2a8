package dataprep

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	log "github.com/sirupsen/logrus"

	"github.com/marczieee/featurepipe/pkg/data"
)

// DeriveRule defines a numeric column computed from other columns of the same row.
type DeriveRule struct {
	Name       string `yaml:"name" validate:"required"`
	Expression string `yaml:"expression" validate:"required"`
}

// DefaultDeriveRules lists the computed columns in dependency order.
func DefaultDeriveRules() []DeriveRule {
	return []DeriveRule{
		{Name: "total_cost", Expression: "purchase_amount + shipping_cost"},
		{Name: "discount_amount", Expression: "roundTo(purchase_amount * discount_percent / 100, 2)"},
		{Name: "final_price", Expression: "roundTo(total_cost - discount_amount, 2)"},
		{Name: "price_per_rating", Expression: "roundTo(final_price / rating, 2)"},
		{Name: "income_purchase_ratio", Expression: "roundTo(purchase_amount / income * 100, 2)"},
		{Name: "age_squared", Expression: "age ** 2"},
		{Name: "spending_power_index", Expression: "roundTo((income / 1000) / age, 2)"},
	}
}

type derivation struct {
	DeriveRule
	inputs []string
}

// Deriver appends the computed columns whose inputs are present.
type Deriver struct {
	rules []derivation
}

// NewDeriver parses every rule up front so broken expressions surface before any data is read.
func NewDeriver(rules []DeriveRule) (*Deriver, error) {
	d := &Deriver{}
	seen := make(map[string]bool)
	for _, r := range rules {
		if r.Name == "" {
			return nil, errors.New("derive rule with empty name")
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("derive rule %q defined twice", r.Name)
		}
		seen[r.Name] = true
		inputs, err := ruleInputs(r.Expression)
		if err != nil {
			return nil, fmt.Errorf("derive rule %q: %w", r.Name, err)
		}
		d.rules = append(d.rules, derivation{DeriveRule: r, inputs: inputs})
	}
	return d, nil
}

func (d *Deriver) Name() string { return "derive_computed_columns" }

func (d *Deriver) Apply(t *data.Table) (*data.Table, error) {
	out := t.Clone()
	for _, r := range d.rules {
		cols, ok := numericInputs(out, r.inputs)
		if !ok {
			log.Debugf("skipping %s: needs %v", r.Name, r.inputs)
			continue
		}
		values, err := r.evaluate(out.Len(), cols)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", r.Name, err)
		}
		if integerOutput(cols, values) {
			err = out.AddInteger(r.Name, values)
		} else {
			err = out.AddNumeric(r.Name, values)
		}
		if err != nil {
			return nil, err
		}
		log.Infof("created %s", r.Name)
	}
	return out, nil
}

var roundToFunc = expr.Function(
	"roundTo",
	func(params ...any) (any, error) {
		v, ok := toFloat(params[0])
		if !ok {
			return nil, fmt.Errorf("roundTo: %T is not a number", params[0])
		}
		places, ok := toFloat(params[1])
		if !ok {
			return nil, fmt.Errorf("roundTo: %T is not a number", params[1])
		}
		return RoundTo(v, int32(places)), nil
	},
	new(func(float64, int) float64),
)

func (r derivation) evaluate(rows int, cols []*data.Column) ([]float64, error) {
	env := make(map[string]any, len(cols))
	for _, c := range cols {
		env[c.Name] = 0.0
	}
	program, err := expr.Compile(r.Expression, expr.Env(env), roundToFunc)
	if err != nil {
		return nil, err
	}

	values := make([]float64, rows)
	for i := range rows {
		for _, c := range cols {
			env[c.Name] = c.Floats[i]
		}
		res, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		v, ok := toFloat(res)
		if !ok {
			return nil, fmt.Errorf("row %d: result %T is not a number", i, res)
		}
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		values[i] = v
	}
	return values, nil
}

// identVisitor collects the variable names an expression reads.
type identVisitor struct {
	idents []string
	calls  map[string]bool
}

func (v *identVisitor) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		v.idents = append(v.idents, n.Value)
	case *ast.CallNode:
		if id, ok := n.Callee.(*ast.IdentifierNode); ok {
			v.calls[id.Value] = true
		}
	}
}

func ruleInputs(expression string) ([]string, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	v := &identVisitor{calls: make(map[string]bool)}
	ast.Walk(&tree.Node, v)

	var inputs []string
	seen := make(map[string]bool)
	for _, id := range v.idents {
		if v.calls[id] || seen[id] {
			continue
		}
		seen[id] = true
		inputs = append(inputs, id)
	}
	if len(inputs) == 0 {
		return nil, errors.New("expression reads no columns")
	}
	return inputs, nil
}

func numericInputs(t *data.Table, names []string) ([]*data.Column, bool) {
	cols := make([]*data.Column, len(names))
	for i, name := range names {
		c, ok := t.Column(name)
		if !ok || c.Kind != data.Numeric {
			return nil, false
		}
		cols[i] = c
	}
	return cols, true
}

func integerOutput(inputs []*data.Column, values []float64) bool {
	for _, c := range inputs {
		if !c.Integer {
			return false
		}
	}
	for _, v := range values {
		if !math.IsNaN(v) && v != math.Trunc(v) {
			return false
		}
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	}
	return 0, false
}
