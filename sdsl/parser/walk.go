package parser

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	addExprs := func(list []Expression) {
		for _, e := range list {
			add(e)
		}
	}
	addStmts := func(list []Statement) {
		for _, st := range list {
			add(st)
		}
	}

	switch n := n.(type) {
	case *Unit:
		addStmts(n.Statements)
	case *PostfixExpression:
		add(n.Source)
		for _, a := range n.Accessors {
			add(a)
		}
	case *MemberAccess:
		add(n.Member)
	case *MethodAccess:
		add(n.Name)
		addExprs(n.Arguments)
	case *IndexAccess:
		add(n.Index)
	case *CallExpression:
		add(n.Name)
		addExprs(n.Arguments)
	case *ArrayLiteral:
		addExprs(n.Values)
	case *UnaryExpression:
		add(n.Operand)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *ConditionalExpression:
		add(n.Condition)
		add(n.Then)
		add(n.Else)
	case *ParenthesizedExpression:
		add(n.Inner)
	case *TypeName:
		out = append(out, n.Generics...)
		addExprs(n.ArraySizes)
	case *Variable:
		add(n.Name)
		addExprs(n.ArraySizes)
		if n.Value != nil {
			add(n.Value)
		}
	case *Assignment:
		add(n.Target)
		add(n.Value)
	case *Attribute:
		add(n.Name)
		addExprs(n.Arguments)
	case *ExpressionStatement:
		add(n.Expression)
	case *Declare:
		add(n.Type)
		for _, v := range n.Variables {
			add(v)
		}
	case *Assign:
		for _, a := range n.Assignments {
			add(a)
		}
	case *Block:
		addStmts(n.Statements)
	case *Return:
		if n.Value != nil {
			add(n.Value)
		}
	case *ConditionalFlow:
		add(n.If)
		for _, e := range n.ElseIfs {
			add(e)
		}
		if n.Else != nil {
			add(n.Else)
		}
	case *If:
		add(n.Condition)
		add(n.Body)
	case *ElseIf:
		add(n.Condition)
		add(n.Body)
	case *Else:
		add(n.Body)
	case *While:
		for _, a := range n.Attributes {
			add(a)
		}
		add(n.Condition)
		add(n.Body)
	case *For:
		for _, a := range n.Attributes {
			add(a)
		}
		add(n.Init)
		add(n.Condition)
		addStmts(n.Update)
		add(n.Body)
	case *ForEach:
		add(n.Type)
		add(n.Variable)
		add(n.Collection)
		add(n.Body)
	}
	return out
}

// Inspect traverses the tree rooted at n in depth-first order. When f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
