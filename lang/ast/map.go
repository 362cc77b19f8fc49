package ast

// ToMap converts b to nested maps and slices of native Go values suitable for
// JSON or YAML encoding. Every node becomes a map with a "node" key naming its
// kind and a "pos" key holding "line:column".
func ToMap(b *Block) map[string]any {
	m, _ := WalkStatement[map[string]any](b, mapper{})

	return m
}

type mapper struct{}

func node(kind string, n Node, kv ...any) map[string]any {
	m := map[string]any{
		"node": kind,
		"pos":  n.Pos().String(),
	}

	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}

	return m
}

func (v mapper) expr(e Expression) map[string]any {
	m, _ := WalkExpression[map[string]any](e, v)

	return m
}

func (v mapper) VisitBlock(n *Block) (map[string]any, error) {
	stmts := make([]any, 0, len(n.Statements))
	for _, s := range n.Statements {
		m, _ := WalkStatement[map[string]any](s, v)
		stmts = append(stmts, m)
	}

	return node("Block", n, "statements", stmts), nil
}

func (v mapper) VisitDeclaration(n *Declaration) (map[string]any, error) {
	return node("Declaration", n,
		"type", n.Type.String(),
		"name", n.Name,
		"value", v.expr(n.Value),
	), nil
}

func (v mapper) VisitAssign(n *Assign) (map[string]any, error) {
	return node("Assign", n, "name", n.Name, "value", v.expr(n.Value)), nil
}

func (v mapper) VisitPrint(n *Print) (map[string]any, error) {
	return node("Print", n, "value", v.expr(n.Value)), nil
}

func (v mapper) VisitBinaryOp(n *BinaryOp) (map[string]any, error) {
	return node("BinaryOp", n,
		"op", n.Op.String(),
		"left", v.expr(n.Left),
		"right", v.expr(n.Right),
	), nil
}

func (v mapper) VisitLiteral(n *Literal) (map[string]any, error) {
	return node("Literal", n, "type", n.Type.String(), "value", n.Value), nil
}

func (v mapper) VisitVariable(n *Variable) (map[string]any, error) {
	return node("Variable", n, "name", n.Name), nil
}
