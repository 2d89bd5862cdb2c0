package table

// ============================================================================
// METRIC DERIVER — Per-row derivation rules over joined columns
// ============================================================================
// A Rule declares the fields it reads, so dependencies are checkable
// before the pipeline runs. Null inputs propagate: when any declared
// input is null the rule's function is not called and the result is
// null. Coercing null to zero is never implicit — use FillNull first
// where the pipeline wants that.
// ============================================================================

// Rule derives one output field per row.
type Rule struct {
	// Field names the output column.
	Field string
	// Inputs lists the fields Fn reads. If any is null on a row, Fn
	// is skipped and the output is null.
	Inputs []string
	// Fn receives the input values in Inputs order, all non-null.
	Fn func(in []Value) Value
}

// Derive applies the rules in order and returns a new table with the
// derived columns appended. Later rules see earlier rules' outputs.
func (t *Table) Derive(rules ...Rule) *Table {
	cols := t.Columns()
	colSet := make(map[string]bool, len(cols))
	for _, c := range cols {
		colSet[c] = true
	}
	for _, rule := range rules {
		if !colSet[rule.Field] {
			cols = append(cols, rule.Field)
			colSet[rule.Field] = true
		}
	}

	out := New(t.name, cols...)
	for i := 0; i < t.Len(); i++ {
		nr := t.Row(i).clone()
		for _, rule := range rules {
			nr[rule.Field] = applyRule(nr, rule)
		}
		out.AppendRow(nr)
	}
	return out
}

func applyRule(r Row, rule Rule) Value {
	in := make([]Value, len(rule.Inputs))
	for i, f := range rule.Inputs {
		v := r.Get(f)
		if v.IsNull() {
			return Null()
		}
		in[i] = v
	}
	return rule.Fn(in)
}

// ============================================================================
// RULE CONSTRUCTORS
// ============================================================================

// Sum derives field as the sum of the inputs. Null if any input is
// null or non-numeric.
func Sum(field string, inputs ...string) Rule {
	return Rule{
		Field:  field,
		Inputs: inputs,
		Fn: func(in []Value) Value {
			total := 0.0
			for _, v := range in {
				f, ok := v.Float()
				if !ok {
					return Null()
				}
				total += f
			}
			return Number(total)
		},
	}
}

// Ratio derives field as num/den. Null when either side is null or
// non-numeric, and null — not infinity — when den is zero.
func Ratio(field, num, den string) Rule {
	return Rule{
		Field:  field,
		Inputs: []string{num, den},
		Fn: func(in []Value) Value {
			n, okN := in[0].Float()
			d, okD := in[1].Float()
			if !okN || !okD || d == 0 {
				return Null()
			}
			return Number(n / d)
		},
	}
}

// Product derives field as the product of the inputs. Null if any
// input is null or non-numeric.
func Product(field string, inputs ...string) Rule {
	return Rule{
		Field:  field,
		Inputs: inputs,
		Fn: func(in []Value) Value {
			total := 1.0
			for _, v := range in {
				f, ok := v.Float()
				if !ok {
					return Null()
				}
				total *= f
			}
			return Number(total)
		},
	}
}

// Scale derives field as input × factor. Null on null/non-numeric input.
func Scale(field, input string, factor float64) Rule {
	return Rule{
		Field:  field,
		Inputs: []string{input},
		Fn: func(in []Value) Value {
			f, ok := in[0].Float()
			if !ok {
				return Null()
			}
			return Number(f * factor)
		},
	}
}

// Map derives field by applying fn to a single numeric input. Null on
// null/non-numeric input. Used for curve lookups.
func Map(field, input string, fn func(float64) float64) Rule {
	return Rule{
		Field:  field,
		Inputs: []string{input},
		Fn: func(in []Value) Value {
			f, ok := in[0].Float()
			if !ok {
				return Null()
			}
			return Number(fn(f))
		},
	}
}
