package parser

type NodeKind int

const (
	KindUnit NodeKind = iota

	// Expressions
	KindLiteral
	KindIdentifier
	KindPostfixExpr
	KindMemberAccess
	KindMethodAccess
	KindIndexAccess
	KindIncrementAccess
	KindCallExpr
	KindArrayLiteral
	KindUnaryExpr
	KindBinaryExpr
	KindConditionalExpr
	KindParenExpr
	KindEmptyExpr

	// Types and declarators
	KindTypeName
	KindVariable
	KindAssignment
	KindAttribute

	// Statements
	KindEmptyStmt
	KindExprStmt
	KindDeclare
	KindAssign
	KindBlock
	KindBreak
	KindContinue
	KindDiscard
	KindReturn
	KindConditionalFlow
	KindIf
	KindElseIf
	KindElse
	KindWhile
	KindFor
	KindForEach
)

var nodeKindNames = map[NodeKind]string{
	KindUnit:            "Unit",
	KindLiteral:         "Literal",
	KindIdentifier:      "Identifier",
	KindPostfixExpr:     "PostfixExpr",
	KindMemberAccess:    "MemberAccess",
	KindMethodAccess:    "MethodAccess",
	KindIndexAccess:     "IndexAccess",
	KindIncrementAccess: "IncrementAccess",
	KindCallExpr:        "CallExpr",
	KindArrayLiteral:    "ArrayLiteral",
	KindUnaryExpr:       "UnaryExpr",
	KindBinaryExpr:      "BinaryExpr",
	KindConditionalExpr: "ConditionalExpr",
	KindParenExpr:       "ParenExpr",
	KindEmptyExpr:       "EmptyExpr",
	KindTypeName:        "TypeName",
	KindVariable:        "Variable",
	KindAssignment:      "Assignment",
	KindAttribute:       "Attribute",
	KindEmptyStmt:       "EmptyStmt",
	KindExprStmt:        "ExprStmt",
	KindDeclare:         "Declare",
	KindAssign:          "Assign",
	KindBlock:           "Block",
	KindBreak:           "Break",
	KindContinue:        "Continue",
	KindDiscard:         "Discard",
	KindReturn:          "Return",
	KindConditionalFlow: "ConditionalFlow",
	KindIf:              "If",
	KindElseIf:          "ElseIf",
	KindElse:            "Else",
	KindWhile:           "While",
	KindFor:             "For",
	KindForEach:         "ForEach",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() NodeKind
	Span() Span
}

type Expression interface {
	Node
	expressionNode()
}

type Statement interface {
	Node
	statementNode()
}

// Accessor is one link of a postfix chain: a member, a method call, an
// index or a postfix increment.
type Accessor interface {
	Node
	accessorNode()
}

type node struct {
	span Span
}

func (n *node) Span() Span { return n.span }
