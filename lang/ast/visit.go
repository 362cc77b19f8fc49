package ast

// StatementVisitor handles each statement kind.
type StatementVisitor[R any] interface {
	VisitBlock(n *Block) (R, error)
	VisitDeclaration(n *Declaration) (R, error)
	VisitAssign(n *Assign) (R, error)
	VisitPrint(n *Print) (R, error)
}

// ExpressionVisitor handles each expression kind.
type ExpressionVisitor[R any] interface {
	VisitBinaryOp(n *BinaryOp) (R, error)
	VisitLiteral(n *Literal) (R, error)
	VisitVariable(n *Variable) (R, error)
}

// WalkStatement dispatches s to the matching method of v.
func WalkStatement[R any](s Statement, v StatementVisitor[R]) (R, error) {
	d := &stmtAdapter[R]{v: v}
	s.acceptStatement(d)

	return d.r, d.err
}

// WalkExpression dispatches e to the matching method of v.
func WalkExpression[R any](e Expression, v ExpressionVisitor[R]) (R, error) {
	d := &exprAdapter[R]{v: v}
	e.acceptExpression(d)

	return d.r, d.err
}

// The dispatch interfaces are non-generic so that node methods can accept
// them; the adapters carry the typed result back to the caller.

type stmtDispatch interface {
	block(n *Block)
	declaration(n *Declaration)
	assign(n *Assign)
	print(n *Print)
}

type exprDispatch interface {
	binaryOp(n *BinaryOp)
	literal(n *Literal)
	variable(n *Variable)
}

func (n *Block) acceptStatement(d stmtDispatch)       { d.block(n) }
func (n *Declaration) acceptStatement(d stmtDispatch) { d.declaration(n) }
func (n *Assign) acceptStatement(d stmtDispatch)      { d.assign(n) }
func (n *Print) acceptStatement(d stmtDispatch)       { d.print(n) }

func (n *BinaryOp) acceptExpression(d exprDispatch) { d.binaryOp(n) }
func (n *Literal) acceptExpression(d exprDispatch)  { d.literal(n) }
func (n *Variable) acceptExpression(d exprDispatch) { d.variable(n) }

type stmtAdapter[R any] struct {
	v   StatementVisitor[R]
	r   R
	err error
}

func (a *stmtAdapter[R]) block(n *Block)             { a.r, a.err = a.v.VisitBlock(n) }
func (a *stmtAdapter[R]) declaration(n *Declaration) { a.r, a.err = a.v.VisitDeclaration(n) }
func (a *stmtAdapter[R]) assign(n *Assign)           { a.r, a.err = a.v.VisitAssign(n) }
func (a *stmtAdapter[R]) print(n *Print)             { a.r, a.err = a.v.VisitPrint(n) }

type exprAdapter[R any] struct {
	v   ExpressionVisitor[R]
	r   R
	err error
}

func (a *exprAdapter[R]) binaryOp(n *BinaryOp) { a.r, a.err = a.v.VisitBinaryOp(n) }
func (a *exprAdapter[R]) literal(n *Literal)   { a.r, a.err = a.v.VisitLiteral(n) }
func (a *exprAdapter[R]) variable(n *Variable) { a.r, a.err = a.v.VisitVariable(n) }
