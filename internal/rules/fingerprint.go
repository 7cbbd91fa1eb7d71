package rules

// Fingerprint renders the structural identity of a rule as plain data for
// cache keying. Function-valued fields cannot be serialized; they contribute
// presence markers only, so two rules differing solely in attached code
// share a fingerprint. Callers attaching code-backed rules should give them
// distinct IDs to keep cache keys honest.
func (r *Rule) Fingerprint() map[string]any {
	if r == nil {
		return nil
	}

	fp := map[string]any{"type": string(r.Type)}
	if r.Target != "" {
		fp["target"] = r.Target
	}
	if r.ID != "" {
		fp["id"] = r.ID
	}
	if r.Name != "" {
		fp["name"] = r.Name
	}
	if r.Library != "" {
		fp["library"] = r.Library
	}
	if r.Mapper != nil {
		fp["mapper"] = true
	}
	if r.Mapping != nil {
		fp["mapping"] = r.Mapping
	}
	if r.HasDefault {
		fp["default"] = r.Default
	}
	if r.Compute != nil {
		fp["compute"] = true
	}
	if r.Combiner != nil {
		fp["combiner"] = true
	}
	if len(r.Inputs) > 0 {
		fp["inputs"] = r.Inputs
	}
	if len(r.Args) > 0 {
		fp["args"] = r.Args
	}
	if len(r.Cases) > 0 {
		cases := make([]any, len(r.Cases))
		for i, c := range r.Cases {
			cases[i] = map[string]any{
				"when": c.When.fingerprint(),
				"then": c.Then.fingerprint(),
			}
		}
		fp["cases"] = cases
	}
	if r.Else != nil {
		fp["else"] = r.Else.fingerprint()
	}
	if len(r.Outputs) > 0 {
		outputs := make(map[string]any, len(r.Outputs))
		for target, sub := range r.Outputs {
			outputs[target] = sub.Fingerprint()
		}
		fp["outputs"] = outputs
	}
	if len(r.Steps) > 0 {
		steps := make([]any, len(r.Steps))
		for i, step := range r.Steps {
			steps[i] = step.Fingerprint()
		}
		fp["steps"] = steps
	}
	return fp
}

func (c *Condition) fingerprint() map[string]any {
	if c == nil {
		return nil
	}
	fp := map[string]any{}
	if c.Bool != nil {
		fp["bool"] = *c.Bool
	}
	if c.Fn != nil {
		fp["fn"] = true
	}
	if c.Prop != "" {
		fp["prop"] = c.Prop
	}
	if c.Operator != "" {
		fp["operator"] = c.Operator
	}
	if c.Operand != nil {
		fp["value"] = c.Operand
	}
	if len(c.All) > 0 {
		all := make([]any, len(c.All))
		for i, nested := range c.All {
			all[i] = nested.fingerprint()
		}
		fp["all"] = all
	}
	if len(c.Any) > 0 {
		anyOf := make([]any, len(c.Any))
		for i, nested := range c.Any {
			anyOf[i] = nested.fingerprint()
		}
		fp["any"] = anyOf
	}
	if c.Not != nil {
		fp["not"] = c.Not.fingerprint()
	}
	return fp
}

func (cons Consequence) fingerprint() map[string]any {
	fp := map[string]any{}
	if cons.Rule != nil {
		fp["rule"] = cons.Rule.Fingerprint()
	} else if cons.Value != nil {
		fp["value"] = cons.Value
	}
	return fp
}
