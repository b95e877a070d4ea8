package parser

type LiteralKind int

const (
	LiteralInt LiteralKind = iota + 1
	LiteralFloat
	LiteralBool
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInt:
		return "int"
	case LiteralFloat:
		return "float"
	case LiteralBool:
		return "bool"
	}
	return "unknown"
}

// Literal keeps the literal exactly as written, suffix included.
type Literal struct {
	node
	LiteralKind LiteralKind
	Value       string
}

type Identifier struct {
	node
	Name string
}

// PostfixExpression is a primary expression followed by a chain of
// accessors, e.g. a.b[2].Sample(s, uv)++.
type PostfixExpression struct {
	node
	Source    Expression
	Accessors []Accessor
}

type MemberAccess struct {
	node
	Member *Identifier
}

type MethodAccess struct {
	node
	Name      *Identifier
	Arguments []Expression
}

type IndexAccess struct {
	node
	Index Expression
}

type IncrementAccess struct {
	node
	Op string
}

type CallExpression struct {
	node
	Name      *Identifier
	Arguments []Expression
}

type ArrayLiteral struct {
	node
	Values []Expression
}

type UnaryExpression struct {
	node
	Op      string
	Operand Expression
}

type BinaryExpression struct {
	node
	Left  Expression
	Op    string
	Right Expression
}

type ConditionalExpression struct {
	node
	Condition Expression
	Then      Expression
	Else      Expression
}

type ParenthesizedExpression struct {
	node
	Inner Expression
}

// EmptyExpression stands for an omitted for-loop condition.
type EmptyExpression struct {
	node
}

// TypeName is a type reference such as float4, Texture2D<float4> or
// float[4].
type TypeName struct {
	node
	Name       string
	Generics   []Node
	ArraySizes []Expression
}

type Variable struct {
	node
	Name       *Identifier
	ArraySizes []Expression
	Value      Expression
}

type Assignment struct {
	node
	Target Expression
	Op     string
	Value  Expression
}

type Attribute struct {
	node
	Name      *Identifier
	Arguments []Expression
}

type Unit struct {
	node
	File       string
	Statements []Statement
}

type EmptyStatement struct {
	node
}

type ExpressionStatement struct {
	node
	Expression Expression
}

type Declare struct {
	node
	Modifiers []string
	Type      *TypeName
	Variables []*Variable
}

type Assign struct {
	node
	Assignments []*Assignment
}

type Block struct {
	node
	Statements []Statement
}

type Break struct {
	node
}

type Continue struct {
	node
}

type Discard struct {
	node
}

type Return struct {
	node
	Value Expression
}

type If struct {
	node
	Condition Expression
	Body      Statement
}

type ElseIf struct {
	node
	Condition Expression
	Body      Statement
}

type Else struct {
	node
	Body Statement
}

type ConditionalFlow struct {
	node
	If      *If
	ElseIfs []*ElseIf
	Else    *Else
}

type While struct {
	node
	Attributes []*Attribute
	Condition  Expression
	Body       Statement
}

// For holds placeholders for omitted clauses: Init is an EmptyStatement,
// Condition an EmptyExpression and Update a single EmptyStatement.
type For struct {
	node
	Attributes []*Attribute
	Init       Statement
	Condition  Expression
	Update     []Statement
	Body       Statement
}

type ForEach struct {
	node
	Type       *TypeName
	Variable   *Identifier
	Collection Expression
	Body       Statement
}

func (*Literal) Kind() NodeKind                 { return KindLiteral }
func (*Identifier) Kind() NodeKind              { return KindIdentifier }
func (*PostfixExpression) Kind() NodeKind       { return KindPostfixExpr }
func (*MemberAccess) Kind() NodeKind            { return KindMemberAccess }
func (*MethodAccess) Kind() NodeKind            { return KindMethodAccess }
func (*IndexAccess) Kind() NodeKind             { return KindIndexAccess }
func (*IncrementAccess) Kind() NodeKind         { return KindIncrementAccess }
func (*CallExpression) Kind() NodeKind          { return KindCallExpr }
func (*ArrayLiteral) Kind() NodeKind            { return KindArrayLiteral }
func (*UnaryExpression) Kind() NodeKind         { return KindUnaryExpr }
func (*BinaryExpression) Kind() NodeKind        { return KindBinaryExpr }
func (*ConditionalExpression) Kind() NodeKind   { return KindConditionalExpr }
func (*ParenthesizedExpression) Kind() NodeKind { return KindParenExpr }
func (*EmptyExpression) Kind() NodeKind         { return KindEmptyExpr }
func (*TypeName) Kind() NodeKind                { return KindTypeName }
func (*Variable) Kind() NodeKind                { return KindVariable }
func (*Assignment) Kind() NodeKind              { return KindAssignment }
func (*Attribute) Kind() NodeKind               { return KindAttribute }
func (*Unit) Kind() NodeKind                    { return KindUnit }
func (*EmptyStatement) Kind() NodeKind          { return KindEmptyStmt }
func (*ExpressionStatement) Kind() NodeKind     { return KindExprStmt }
func (*Declare) Kind() NodeKind                 { return KindDeclare }
func (*Assign) Kind() NodeKind                  { return KindAssign }
func (*Block) Kind() NodeKind                   { return KindBlock }
func (*Break) Kind() NodeKind                   { return KindBreak }
func (*Continue) Kind() NodeKind                { return KindContinue }
func (*Discard) Kind() NodeKind                 { return KindDiscard }
func (*Return) Kind() NodeKind                  { return KindReturn }
func (*If) Kind() NodeKind                      { return KindIf }
func (*ElseIf) Kind() NodeKind                  { return KindElseIf }
func (*Else) Kind() NodeKind                    { return KindElse }
func (*ConditionalFlow) Kind() NodeKind         { return KindConditionalFlow }
func (*While) Kind() NodeKind                   { return KindWhile }
func (*For) Kind() NodeKind                     { return KindFor }
func (*ForEach) Kind() NodeKind                 { return KindForEach }

func (*Literal) expressionNode()                 {}
func (*Identifier) expressionNode()              {}
func (*PostfixExpression) expressionNode()       {}
func (*CallExpression) expressionNode()          {}
func (*ArrayLiteral) expressionNode()            {}
func (*UnaryExpression) expressionNode()         {}
func (*BinaryExpression) expressionNode()        {}
func (*ConditionalExpression) expressionNode()   {}
func (*ParenthesizedExpression) expressionNode() {}
func (*EmptyExpression) expressionNode()         {}

func (*MemberAccess) accessorNode()    {}
func (*MethodAccess) accessorNode()    {}
func (*IndexAccess) accessorNode()     {}
func (*IncrementAccess) accessorNode() {}

func (*EmptyStatement) statementNode()      {}
func (*ExpressionStatement) statementNode() {}
func (*Declare) statementNode()             {}
func (*Assign) statementNode()              {}
func (*Block) statementNode()               {}
func (*Break) statementNode()               {}
func (*Continue) statementNode()            {}
func (*Discard) statementNode()             {}
func (*Return) statementNode()              {}
func (*ConditionalFlow) statementNode()     {}
func (*While) statementNode()               {}
func (*For) statementNode()                 {}
func (*ForEach) statementNode()             {}
