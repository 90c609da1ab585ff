package ast

type NodeType string

const (
	NodeLiteral      NodeType = "Literal"
	NodeGrouping     NodeType = "Grouping"
	NodeUnary        NodeType = "Unary"
	NodeBinary       NodeType = "Binary"
	NodeLogical      NodeType = "Logical"
	NodeTernary      NodeType = "Ternary"
	NodeAssign       NodeType = "Assign"
	NodeVariable     NodeType = "Variable"
	NodeCall         NodeType = "Call"
	NodeGet          NodeType = "Get"
	NodeSet          NodeType = "Set"
	NodeThis         NodeType = "This"
	NodeSuper        NodeType = "Super"
	NodeLambda       NodeType = "Lambda"
	NodeArrayLiteral NodeType = "ArrayLiteral"
	NodeIndexGet     NodeType = "IndexGet"
	NodeIndexSet     NodeType = "IndexSet"

	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodePrint               NodeType = "Print"
	NodeVar                 NodeType = "Var"
	NodeBlock               NodeType = "Block"
	NodeIf                  NodeType = "If"
	NodeWhile               NodeType = "While"
	NodeFunction            NodeType = "Function"
	NodeReturn              NodeType = "Return"
	NodeClass               NodeType = "Class"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. The two families are closed: only types in this package
// implement them.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// FunctionNode is implemented by the two declaration shapes a runtime
// function can be built from: named functions and lambdas.
type FunctionNode interface {
	Node
	Parameters() []Token
	Statements() []Statement
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// Literal holds nil, a bool, a float64 or a string.
type Literal struct {
	nodeImpl
	expressionMarker

	Value any `json:"value"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGrouping(expr Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expression: expr}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator Token      `json:"operator"`
	Right    Expression `json:"right"`
}

func NewUnary(operator Token, right Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Right: right}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression `json:"left"`
	Operator Token      `json:"operator"`
	Right    Expression `json:"right"`
}

func NewBinary(left Expression, operator Token, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: operator, Right: right}
}

// Logical is a short-circuiting `and` / `or`.
type Logical struct {
	nodeImpl
	expressionMarker

	Left     Expression `json:"left"`
	Operator Token      `json:"operator"`
	Right    Expression `json:"right"`
}

func NewLogical(left Expression, operator Token, right Expression) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical), Left: left, Operator: operator, Right: right}
}

type Ternary struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Then      Expression `json:"then"`
	Else      Expression `json:"else"`
}

func NewTernary(condition, then, otherwise Expression) *Ternary {
	return &Ternary{nodeImpl: newNodeImpl(NodeTernary), Condition: condition, Then: then, Else: otherwise}
}

type Assign struct {
	nodeImpl
	expressionMarker

	Name  Token      `json:"name"`
	Value Expression `json:"value"`
}

func NewAssign(name Token, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

type Variable struct {
	nodeImpl
	expressionMarker

	Name Token `json:"name"`
}

func NewVariable(name Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// Call keeps the closing paren for error locations.
type Call struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Paren     Token        `json:"paren"`
	Arguments []Expression `json:"arguments"`
}

func NewCall(callee Expression, paren Token, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Arguments: args}
}

type Get struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Name   Token      `json:"name"`
}

func NewGet(object Expression, name Token) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Object: object, Name: name}
}

type Set struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Name   Token      `json:"name"`
	Value  Expression `json:"value"`
}

func NewSet(object Expression, name Token, value Expression) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet), Object: object, Name: name, Value: value}
}

type This struct {
	nodeImpl
	expressionMarker

	Keyword Token `json:"keyword"`
}

func NewThis(keyword Token) *This {
	return &This{nodeImpl: newNodeImpl(NodeThis), Keyword: keyword}
}

type Super struct {
	nodeImpl
	expressionMarker

	Keyword Token `json:"keyword"`
	Method  Token `json:"method"`
}

func NewSuper(keyword, method Token) *Super {
	return &Super{nodeImpl: newNodeImpl(NodeSuper), Keyword: keyword, Method: method}
}

type Lambda struct {
	nodeImpl
	expressionMarker

	Keyword Token       `json:"keyword"`
	Params  []Token     `json:"params"`
	Body    []Statement `json:"body"`
}

func NewLambda(keyword Token, params []Token, body []Statement) *Lambda {
	return &Lambda{nodeImpl: newNodeImpl(NodeLambda), Keyword: keyword, Params: params, Body: body}
}

func (l *Lambda) Parameters() []Token     { return l.Params }
func (l *Lambda) Statements() []Statement { return l.Body }

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Bracket  Token        `json:"bracket"`
	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(bracket Token, elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Bracket: bracket, Elements: elements}
}

// IndexGet is `object[index]`. Bracket is the closing bracket.
type IndexGet struct {
	nodeImpl
	expressionMarker

	Object  Expression `json:"object"`
	Bracket Token      `json:"bracket"`
	Index   Expression `json:"index"`
}

func NewIndexGet(object Expression, bracket Token, index Expression) *IndexGet {
	return &IndexGet{nodeImpl: newNodeImpl(NodeIndexGet), Object: object, Bracket: bracket, Index: index}
}

type IndexSet struct {
	nodeImpl
	expressionMarker

	Object  Expression `json:"object"`
	Bracket Token      `json:"bracket"`
	Index   Expression `json:"index"`
	Value   Expression `json:"value"`
}

func NewIndexSet(object Expression, bracket Token, index, value Expression) *IndexSet {
	return &IndexSet{nodeImpl: newNodeImpl(NodeIndexSet), Object: object, Bracket: bracket, Index: index, Value: value}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type Print struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrint(expr Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Expression: expr}
}

// Var declares a variable. Initializer is nil when omitted.
type Var struct {
	nodeImpl
	statementMarker

	Name        Token      `json:"name"`
	Initializer Expression `json:"initializer,omitempty"`
}

func NewVar(name Token, initializer Expression) *Var {
	return &Var{nodeImpl: newNodeImpl(NodeVar), Name: name, Initializer: initializer}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(stmts []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: stmts}
}

type If struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIf(condition Expression, then, otherwise Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Then: then, Else: otherwise}
}

type While struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhile(condition Expression, body Statement) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Body: body}
}

type Function struct {
	nodeImpl
	statementMarker

	Name   Token       `json:"name"`
	Params []Token     `json:"params"`
	Body   []Statement `json:"body"`
}

func NewFunction(name Token, params []Token, body []Statement) *Function {
	return &Function{nodeImpl: newNodeImpl(NodeFunction), Name: name, Params: params, Body: body}
}

func (f *Function) Parameters() []Token     { return f.Params }
func (f *Function) Statements() []Statement { return f.Body }

type Return struct {
	nodeImpl
	statementMarker

	Keyword Token      `json:"keyword"`
	Value   Expression `json:"value,omitempty"`
}

func NewReturn(keyword Token, value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Keyword: keyword, Value: value}
}

type Class struct {
	nodeImpl
	statementMarker

	Name       Token       `json:"name"`
	Superclass *Variable   `json:"superclass,omitempty"`
	Methods    []*Function `json:"methods"`
}

func NewClass(name Token, superclass *Variable, methods []*Function) *Class {
	return &Class{nodeImpl: newNodeImpl(NodeClass), Name: name, Superclass: superclass, Methods: methods}
}
